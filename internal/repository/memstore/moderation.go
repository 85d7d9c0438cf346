package memstore

import (
	"context"
	"fmt"

	"holidaily/internal/domain"
)

type moderationStore struct{ *Store }

func (s *moderationStore) Report(_ context.Context, target domain.ReportTarget, reporterID int64, alsoBlock bool) (domain.ReportOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reporter, ok := s.profiles[reporterID]
	if !ok {
		return domain.ReportOutcome{}, domain.ErrProfileNotFound
	}

	var out domain.ReportOutcome
	switch target.Kind {
	case domain.TargetComment:
		c, ok := s.comments[target.ID]
		if !ok {
			return domain.ReportOutcome{}, domain.ErrCommentNotFound
		}
		c.Reports++
		out.Reports, out.AuthorID = c.Reports, c.UserID
		reporter.ReportedComments[target.ID] = struct{}{}
	case domain.TargetPost:
		p, ok := s.posts[target.ID]
		if !ok {
			return domain.ReportOutcome{}, domain.ErrPostNotFound
		}
		p.Reports++
		out.Reports, out.AuthorID = p.Reports, p.UserID
		reporter.ReportedPosts[target.ID] = struct{}{}
	default:
		return domain.ReportOutcome{}, fmt.Errorf("%w: %s cannot be reported", domain.ErrValidation, target.Kind)
	}

	if alsoBlock && out.AuthorID != reporterID {
		reporter.BlockedUsers[out.AuthorID] = struct{}{}
		out.Blocked = true
	}
	return out, nil
}

func (s *moderationStore) Block(_ context.Context, blockerID, blockedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[blockerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.BlockedUsers[blockedID] = struct{}{}
	return nil
}
