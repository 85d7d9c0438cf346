package facade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/pkg/validate"
	"holidaily/internal/service/moderation"
	"holidaily/internal/service/notification"
)

// threadContext is where a scope lives, for notification copy and routing.
type threadContext struct {
	where     string
	holidayID int64
}

func (s *service) resolveScope(ctx context.Context, scope domain.Scope) (threadContext, error) {
	holidayID := scope.ID
	if scope.Kind == domain.ScopePost {
		post, err := s.postRepo.GetByID(ctx, scope.ID)
		if err != nil {
			return threadContext{}, fmt.Errorf("failed to get post: %w", err)
		}
		if post == nil || post.Deleted {
			return threadContext{}, domain.ErrPostNotFound
		}
		holidayID = post.HolidayID
	}

	holiday, err := s.holidayRepo.GetByID(ctx, holidayID)
	if err != nil {
		return threadContext{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday == nil {
		return threadContext{}, domain.ErrHolidayNotFound
	}
	return threadContext{where: holiday.Name, holidayID: holiday.ID}, nil
}

func (s *service) PostComment(ctx context.Context, caller *domain.UserProfile, input domain.CreateCommentInput) (*domain.Comment, error) {
	if err := requirePoster(caller); err != nil {
		return nil, err
	}

	scope, err := input.Scope()
	if err != nil {
		return nil, err
	}

	input.Content = s.clean(input.Content)
	if input.Content == "" {
		return nil, domain.ErrEmptyContent
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	tc, err := s.resolveScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent == nil {
			return nil, domain.ErrCommentNotFound
		}
		if parent.Scope() != scope {
			return nil, domain.ErrParentScope
		}
	}

	comment := &domain.Comment{
		Content:   input.Content,
		HolidayID: input.HolidayID,
		PostID:    input.PostID,
		UserID:    caller.UserID,
		ParentID:  input.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	s.threads.Invalidate(ctx, scope)

	s.logDeliveries("mention", s.notifSvc.NotifyMentions(ctx, notification.MentionSource{
		Type:       domain.NotifComment,
		EntityID:   comment.ID,
		AuthorID:   caller.UserID,
		AuthorName: caller.Username,
		Content:    comment.Content,
		Where:      tc.where,
		HolidayID:  tc.holidayID,
	}))

	return comment, nil
}

func (s *service) EditComment(ctx context.Context, caller *domain.UserProfile, commentID int64, input domain.UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil || comment.Deleted {
		return nil, domain.ErrCommentNotFound
	}
	if err := moderation.Authorize(caller, comment.UserID); err != nil {
		return nil, err
	}

	input.Content = s.clean(input.Content)
	if input.Content == "" {
		return nil, domain.ErrEmptyContent
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	editedAt := s.now()
	if err := s.commentRepo.UpdateContent(ctx, commentID, input.Content, editedAt); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Content = input.Content
	comment.Edited = &editedAt
	s.threads.Invalidate(ctx, comment.Scope())

	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, caller *domain.UserProfile, commentID int64) error {
	comment, err := s.moderation.DeleteComment(ctx, commentID, caller)
	if err != nil {
		return err
	}
	s.threads.Invalidate(ctx, comment.Scope())
	return nil
}

func (s *service) Vote(ctx context.Context, caller *domain.UserProfile, target domain.VoteTarget, choice int) (domain.VoteOutcome, error) {
	if caller == nil {
		return domain.VoteOutcome{}, domain.ErrIdentityRequired
	}

	vc := domain.VoteChoice(choice)
	out, err := s.votes.Apply(ctx, target, caller.UserID, vc)
	if err != nil {
		return domain.VoteOutcome{}, err
	}
	if target.Kind != domain.TargetComment || !out.Changed {
		return out, nil
	}

	s.threads.Invalidate(ctx, out.Scope)

	if vc.IsUpvote() && out.AuthorID != caller.UserID {
		s.notifyCommentLike(ctx, caller, target.ID, out)
	}
	return out, nil
}

func (s *service) notifyCommentLike(ctx context.Context, caller *domain.UserProfile, commentID int64, out domain.VoteOutcome) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment == nil {
		s.logger.Warn("Skipping comment like notification, comment unavailable",
			zap.Int64("comment", commentID),
			zap.Error(err))
		return
	}

	tc, err := s.resolveScope(ctx, out.Scope)
	if err != nil {
		s.logger.Warn("Skipping comment like notification, scope unavailable",
			zap.Int64("comment", commentID),
			zap.String("scope", out.Scope.String()),
			zap.Error(err))
		return
	}

	s.logDeliveries("like_comment", s.notifSvc.NotifyLike(ctx, notification.LikeSource{
		Type:      domain.NotifLikeComment,
		EntityID:  commentID,
		OwnerID:   out.AuthorID,
		LikerID:   caller.UserID,
		LikerName: caller.Username,
		Content:   comment.Content,
		HolidayID: tc.holidayID,
	}))
}
