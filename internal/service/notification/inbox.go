package notification

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/pkg/validate"
)

// Broadcast news is delivered out of band and kept out of personal inboxes.
var inboxExcludes = []domain.NotificationType{domain.NotifNews}

type target struct {
	holidayID *int64
	postID    *int64
}

type resolver func(s *service, ctx context.Context, id int64) (target, error)

// resolvers maps each notification type to the lookup that finds its routing target.
var resolvers = map[domain.NotificationType]resolver{
	domain.NotifComment:     (*service).commentTarget,
	domain.NotifLikeComment: (*service).commentTarget,
	domain.NotifPost:        (*service).postTarget,
	domain.NotifLike:        (*service).postTarget,
	domain.NotifHoliday: func(_ *service, _ context.Context, id int64) (target, error) {
		return target{holidayID: &id}, nil
	},
}

func (s *service) commentTarget(ctx context.Context, id int64) (target, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil || comment == nil {
		return target{}, err
	}
	if comment.PostID != nil {
		return s.postTarget(ctx, *comment.PostID)
	}
	return target{holidayID: comment.HolidayID}, nil
}

func (s *service) postTarget(ctx context.Context, id int64) (target, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil || post == nil {
		return target{}, err
	}
	return target{holidayID: &post.HolidayID, postID: &post.ID}, nil
}

func (s *service) List(ctx context.Context, userID int64, window domain.PageWindow) (domain.PaginatedResponse[domain.NotificationView], error) {
	window.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, inboxExcludes, window)
	if err != nil {
		return domain.PaginatedResponse[domain.NotificationView]{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	now := s.now()
	views := make([]domain.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view := domain.NotificationView{
			Notification: n,
			TimeSince:    humanize.RelTime(n.Timestamp, now, "ago", "from now"),
		}
		if resolve, ok := resolvers[n.Type]; ok {
			t, err := resolve(s, ctx, n.NotificationID)
			if err != nil {
				s.logger.Warn("Failed to resolve notification target", zap.Int64("id", n.ID), zap.Error(err))
			}
			view.HolidayID, view.PostID = t.holidayID, t.postID
		}
		views = append(views, view)
	}

	return domain.NewPaginatedResponse(views, window, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) Unsubscribe(ctx context.Context, userID int64) error {
	if err := s.profileRepo.SetEmailsEnabled(ctx, userID, false); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

func (s *service) RegisterDevice(ctx context.Context, userID int64, input domain.RegisterDeviceInput) (*domain.Device, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	device := &domain.Device{UserID: userID, Platform: input.Platform, RegistrationID: input.RegistrationID}
	if err := s.deviceRepo.Register(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	if err := s.profileRepo.SetDeviceActive(ctx, userID, true); err != nil {
		return nil, fmt.Errorf("failed to activate device: %w", err)
	}
	return device, nil
}
