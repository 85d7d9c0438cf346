package memstore

import (
	"context"
	"fmt"

	"holidaily/internal/domain"
)

type voteStore struct{ *Store }

func (s *voteStore) Apply(_ context.Context, target domain.VoteTarget, voterID int64, choice domain.VoteChoice) (domain.VoteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := domain.VoteOutcome{Target: target, Status: choice.Status()}
	key := voteKey{voterID, target.ID}

	var (
		counter *int
		ledger  map[voteKey]domain.VoteChoice
	)
	switch target.Kind {
	case domain.TargetComment:
		c, ok := s.comments[target.ID]
		if !ok {
			return domain.VoteOutcome{}, domain.ErrCommentNotFound
		}
		counter, ledger = &c.Votes, s.commentVotes
		out.AuthorID, out.Scope = c.UserID, c.Scope()
	case domain.TargetHoliday:
		h, ok := s.holidays[target.ID]
		if !ok {
			return domain.VoteOutcome{}, domain.ErrHolidayNotFound
		}
		counter, ledger = &h.Votes, s.holidayVotes
	default:
		return domain.VoteOutcome{}, fmt.Errorf("%w: %s cannot be voted on", domain.ErrValidation, target.Kind)
	}

	var prev *domain.VoteChoice
	if stored, ok := ledger[key]; ok {
		prev = &stored
	}

	delta, changed := domain.VoteDelta(prev, choice)
	if changed {
		*counter += delta
		ledger[key] = choice
		if target.Kind == domain.TargetComment {
			if p, ok := s.profiles[out.AuthorID]; ok {
				p.Confetti += delta
			}
		}
	}

	out.Votes, out.Delta, out.Changed = *counter, delta, changed
	return out, nil
}

func (s *voteStore) CommentChoices(_ context.Context, voterID int64, commentIDs []int64) (map[int64]domain.VoteChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int64]domain.VoteChoice, len(commentIDs))
	for _, id := range commentIDs {
		if choice, ok := s.commentVotes[voteKey{voterID, id}]; ok {
			out[id] = choice
		}
	}
	return out, nil
}
