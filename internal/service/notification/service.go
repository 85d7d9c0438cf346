package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
	"holidaily/internal/repository"
	"holidaily/internal/service/email"
	"holidaily/internal/service/push"
)

// MentionSource describes freshly committed content that may mention users.
type MentionSource struct {
	Type       domain.NotificationType
	EntityID   int64
	AuthorID   int64
	AuthorName string
	Content    string
	Where      string
	HolidayID  int64
}

// LikeSource describes a like or upvote on content owned by OwnerID.
type LikeSource struct {
	Type      domain.NotificationType
	EntityID  int64
	OwnerID   int64
	LikerID   int64
	LikerName string
	Content   string
	HolidayID int64
}

type Service interface {
	NotifyMentions(ctx context.Context, src MentionSource) []Delivery
	NotifyLike(ctx context.Context, src LikeSource) []Delivery
	NotifyHolidayApproved(ctx context.Context, holiday *domain.Holiday, reward int) []Delivery

	List(ctx context.Context, userID int64, window domain.PageWindow) (domain.PaginatedResponse[domain.NotificationView], error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Unsubscribe(ctx context.Context, userID int64) error
	RegisterDevice(ctx context.Context, userID int64, input domain.RegisterDeviceInput) (*domain.Device, error)
}

type service struct {
	notifRepo   repository.NotificationRepository
	profileRepo repository.ProfileRepository
	deviceRepo  repository.DeviceRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	pushSender  push.Sender
	emailSvc    email.Service
	cfg         *config.Config
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	repos *repository.Repositories,
	pushSender push.Sender,
	emailSvc email.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		notifRepo:   repos.Notification,
		profileRepo: repos.Profile,
		deviceRepo:  repos.Device,
		commentRepo: repos.Comment,
		postRepo:    repos.Post,
		pushSender:  pushSender,
		emailSvc:    emailSvc,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger.Named("notification_service"),
	}
}

const previewLength = 140

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength-3]) + "..."
}

func (s *service) NotifyMentions(ctx context.Context, src MentionSource) []Delivery {
	handles := ParseMentions(src.Content)
	if len(handles) == 0 {
		return nil
	}

	profiles, err := s.profileRepo.GetByUsernames(ctx, handles)
	if err != nil {
		s.logger.Error("Failed to resolve mentions", zap.Strings("handles", handles), zap.Error(err))
		return nil
	}

	var jobs []deliveryJob
	for i := range profiles {
		recipient := &profiles[i]
		if recipient.UserID == src.AuthorID {
			continue
		}

		notif := &domain.Notification{
			UserID:         &recipient.UserID,
			NotificationID: src.EntityID,
			Type:           src.Type,
			Title:          fmt.Sprintf("%s mentioned you", src.AuthorName),
			Content:        preview(src.Content),
		}
		if !s.record(ctx, notif) {
			continue
		}

		to, name := recipient.Email, recipient.Username
		jobs = append(jobs, deliveryJob{
			recipient: recipient,
			notif:     *notif,
			data:      pushData(notif, src.HolidayID),
			sendEmail: func(ctx context.Context) error {
				return s.emailSvc.SendMentionEmail(ctx, to, name, src.AuthorName, src.Where, src.Content)
			},
		})
	}

	return s.deliverAll(ctx, jobs)
}

func (s *service) NotifyLike(ctx context.Context, src LikeSource) []Delivery {
	if src.LikerID == src.OwnerID {
		return nil
	}

	owner, err := s.profileRepo.GetByUserID(ctx, src.OwnerID)
	if err != nil {
		s.logger.Error("Failed to load content owner", zap.Int64("owner", src.OwnerID), zap.Error(err))
		return nil
	}
	if owner == nil {
		return nil
	}

	what := "post"
	if src.Type == domain.NotifLikeComment {
		what = "comment"
	}

	notif := &domain.Notification{
		UserID:         &owner.UserID,
		NotificationID: src.EntityID,
		Type:           src.Type,
		Title:          fmt.Sprintf("%s liked your %s", src.LikerName, what),
		Content:        preview(src.Content),
	}
	if !s.record(ctx, notif) {
		return nil
	}

	to, name := owner.Email, owner.Username
	return s.deliverAll(ctx, []deliveryJob{{
		recipient: owner,
		notif:     *notif,
		data:      pushData(notif, src.HolidayID),
		sendEmail: func(ctx context.Context) error {
			return s.emailSvc.SendLikeEmail(ctx, to, name, src.LikerName, src.Content)
		},
	}})
}

func (s *service) NotifyHolidayApproved(ctx context.Context, holiday *domain.Holiday, reward int) []Delivery {
	if holiday.CreatorID == nil {
		return nil
	}

	creator, err := s.profileRepo.GetByUserID(ctx, *holiday.CreatorID)
	if err != nil {
		s.logger.Error("Failed to load holiday creator", zap.Int64("holiday", holiday.ID), zap.Error(err))
		return nil
	}
	if creator == nil {
		return nil
	}

	content := fmt.Sprintf("%s is now live!", holiday.Name)
	if reward > 0 {
		content = fmt.Sprintf("%s is now live! You earned %d confetti.", holiday.Name, reward)
	}

	notif := &domain.Notification{
		UserID:         &creator.UserID,
		NotificationID: holiday.ID,
		Type:           domain.NotifHoliday,
		Title:          "Your holiday was approved!",
		Content:        content,
	}
	if !s.record(ctx, notif) {
		return nil
	}

	to, name := creator.Email, creator.Username
	return s.deliverAll(ctx, []deliveryJob{{
		recipient: creator,
		notif:     *notif,
		data:      pushData(notif, holiday.ID),
		sendEmail: func(ctx context.Context) error {
			return s.emailSvc.SendHolidayApprovedEmail(ctx, to, name, holiday.Name, reward)
		},
	}})
}

// record creates the notification row and reports whether this call created it.
// An existing row means the recipient was already notified about this entity.
func (s *service) record(ctx context.Context, notif *domain.Notification) bool {
	created, err := s.notifRepo.CreateIfAbsent(ctx, notif)
	if err != nil {
		s.logger.Error("Failed to create notification",
			zap.Int64("recipient", *notif.UserID),
			zap.String("type", string(notif.Type)),
			zap.Int64("notification_id", notif.NotificationID),
			zap.Error(err))
		return false
	}
	return created
}

func pushData(notif *domain.Notification, holidayID int64) map[string]any {
	data := map[string]any{
		"notification_type": notif.Type,
		"notification_id":   notif.NotificationID,
	}
	if holidayID != 0 {
		data["holiday_id"] = holidayID
	}
	return data
}
