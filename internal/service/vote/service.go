package vote

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
	"holidaily/internal/repository/dbretry"
)

// Service is the vote ledger for comments and holidays.
type Service interface {
	Apply(ctx context.Context, target domain.VoteTarget, voterID int64, choice domain.VoteChoice) (domain.VoteOutcome, error)
}

type service struct {
	voteRepo repository.VoteRepository
	logger   *zap.Logger
}

func NewService(voteRepo repository.VoteRepository, logger *zap.Logger) Service {
	return &service{
		voteRepo: voteRepo,
		logger:   logger.Named("vote_service"),
	}
}

func (s *service) Apply(ctx context.Context, target domain.VoteTarget, voterID int64, choice domain.VoteChoice) (domain.VoteOutcome, error) {
	if !choice.Valid() {
		return domain.VoteOutcome{}, domain.ErrInvalidVoteChoice
	}
	if target.Kind != domain.TargetComment && target.Kind != domain.TargetHoliday {
		return domain.VoteOutcome{}, domain.NewValidationError(fmt.Sprintf("%s cannot be voted on", target.Kind))
	}

	out, err := dbretry.Operation(ctx, func(ctx context.Context) (domain.VoteOutcome, error) {
		return s.voteRepo.Apply(ctx, target, voterID, choice)
	})
	if err != nil {
		return domain.VoteOutcome{}, fmt.Errorf("failed to apply vote: %w", err)
	}

	if out.Changed {
		s.logger.Debug("Vote applied",
			zap.String("kind", string(target.Kind)),
			zap.Int64("target", target.ID),
			zap.Int64("voter", voterID),
			zap.Int("choice", int(choice)),
			zap.Int("delta", out.Delta),
			zap.Int("votes", out.Votes))
	}

	return out, nil
}
