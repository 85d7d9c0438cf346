package moderation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
	"holidaily/internal/repository/dbretry"
)

type Service interface {
	Report(ctx context.Context, target domain.ReportTarget, reporter *domain.UserProfile, alsoBlock bool) (domain.ReportOutcome, error)
	Block(ctx context.Context, blocker *domain.UserProfile, blockedID int64) error
	DeleteComment(ctx context.Context, commentID int64, caller *domain.UserProfile) (*domain.Comment, error)
}

type service struct {
	moderationRepo repository.ModerationRepository
	commentRepo    repository.CommentRepository
	logger         *zap.Logger
}

func NewService(
	moderationRepo repository.ModerationRepository,
	commentRepo repository.CommentRepository,
	logger *zap.Logger,
) Service {
	return &service{
		moderationRepo: moderationRepo,
		commentRepo:    commentRepo,
		logger:         logger.Named("moderation_service"),
	}
}

// Authorize is the device-bound ownership check for edits and deletes.
// It fails closed when the caller could not be resolved.
func Authorize(caller *domain.UserProfile, ownerID int64) error {
	if caller == nil || caller.DeviceID == "" {
		return domain.ErrNotOwner
	}
	if caller.UserID != ownerID {
		return domain.ErrNotOwner
	}
	return nil
}

func (s *service) Report(ctx context.Context, target domain.ReportTarget, reporter *domain.UserProfile, alsoBlock bool) (domain.ReportOutcome, error) {
	if reporter == nil {
		return domain.ReportOutcome{}, domain.ErrIdentityRequired
	}

	out, err := dbretry.Operation(ctx, func(ctx context.Context) (domain.ReportOutcome, error) {
		return s.moderationRepo.Report(ctx, target, reporter.UserID, alsoBlock)
	})
	if err != nil {
		return domain.ReportOutcome{}, fmt.Errorf("failed to report %s: %w", target.Kind, err)
	}

	s.logger.Info("Content reported",
		zap.String("kind", string(target.Kind)),
		zap.Int64("id", target.ID),
		zap.Int64("reporter", reporter.UserID),
		zap.Int("reports", out.Reports),
		zap.Bool("blocked", out.Blocked))

	return out, nil
}

func (s *service) Block(ctx context.Context, blocker *domain.UserProfile, blockedID int64) error {
	if blocker == nil {
		return domain.ErrIdentityRequired
	}
	if blocker.UserID == blockedID {
		return domain.ErrSelfBlock
	}

	if err := s.moderationRepo.Block(ctx, blocker.UserID, blockedID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

func (s *service) DeleteComment(ctx context.Context, commentID int64, caller *domain.UserProfile) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}

	if err := Authorize(caller, comment.UserID); err != nil {
		s.logger.Warn("Rejected comment delete",
			zap.Int64("comment", commentID),
			zap.Int64("owner", comment.UserID))
		return nil, err
	}

	if comment.Deleted {
		return comment, nil
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	comment.Deleted = true

	return comment, nil
}
