package facade

import (
	"context"
	"fmt"

	"holidaily/internal/domain"
	"holidaily/internal/pkg/validate"
	"holidaily/internal/service/moderation"
	"holidaily/internal/service/notification"
)

func (s *service) PostUpdate(ctx context.Context, caller *domain.UserProfile, input domain.CreatePostInput) (*domain.Post, error) {
	if err := requirePoster(caller); err != nil {
		return nil, err
	}

	input.Content = s.clean(input.Content)
	if input.Content == "" {
		return nil, domain.ErrEmptyContent
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	tc, err := s.resolveScope(ctx, domain.HolidayScope(input.HolidayID))
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID:    caller.UserID,
		HolidayID: input.HolidayID,
		Content:   input.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logDeliveries("mention", s.notifSvc.NotifyMentions(ctx, notification.MentionSource{
		Type:       domain.NotifPost,
		EntityID:   post.ID,
		AuthorID:   caller.UserID,
		AuthorName: caller.Username,
		Content:    post.Content,
		Where:      tc.where,
		HolidayID:  tc.holidayID,
	}))

	return post, nil
}

func (s *service) LikePost(ctx context.Context, caller *domain.UserProfile, postID int64, like bool) (domain.LikeOutcome, error) {
	if caller == nil {
		return domain.LikeOutcome{}, domain.ErrIdentityRequired
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.LikeOutcome{}, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil || post.Deleted {
		return domain.LikeOutcome{}, domain.ErrPostNotFound
	}

	out, err := s.postRepo.SetLike(ctx, postID, caller.UserID, like)
	if err != nil {
		return domain.LikeOutcome{}, fmt.Errorf("failed to like post: %w", err)
	}

	if out.Changed && like {
		s.logDeliveries("like", s.notifSvc.NotifyLike(ctx, notification.LikeSource{
			Type:      domain.NotifLike,
			EntityID:  post.ID,
			OwnerID:   post.UserID,
			LikerID:   caller.UserID,
			LikerName: caller.Username,
			Content:   post.Content,
			HolidayID: post.HolidayID,
		}))
	}

	return out, nil
}

// ListPosts pages a holiday's feed, dropping posts the viewer reported or whose
// author the viewer blocked.
func (s *service) ListPosts(ctx context.Context, holidayID int64, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.Post], error) {
	window.Validate()
	if _, err := s.resolveScope(ctx, domain.HolidayScope(holidayID)); err != nil {
		return domain.PaginatedResponse[domain.Post]{}, err
	}

	posts, total, err := s.postRepo.ListByHoliday(ctx, holidayID, window)
	if err != nil {
		return domain.PaginatedResponse[domain.Post]{}, fmt.Errorf("failed to list posts: %w", err)
	}

	filter := moderation.NewFilter(viewer)
	visible := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if filter.HidePost(p) {
			continue
		}
		visible = append(visible, p)
	}

	return domain.NewPaginatedResponse(visible, window, total), nil
}
