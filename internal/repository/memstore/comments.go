package memstore

import (
	"context"
	"sort"
	"time"

	"holidaily/internal/domain"
)

type commentStore struct{ *Store }

func (s *commentStore) Create(_ context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID("comments", 0)
	comment.Timestamp = s.now()
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *commentStore) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (s *commentStore) UpdateContent(_ context.Context, id int64, content string, editedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.Deleted {
		return domain.ErrCommentNotFound
	}
	c.Content = content
	c.Edited = &editedAt
	return nil
}

func (s *commentStore) SoftDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.comments[id]; ok {
		c.Deleted = true
	}
	return nil
}

// topLevel must be called with mu held.
func (s *commentStore) topLevel(scope domain.Scope) []domain.Comment {
	parents := domain.IDSet{}
	for _, c := range s.comments {
		if c.ParentID != nil {
			parents[*c.ParentID] = struct{}{}
		}
	}

	var out []domain.Comment
	for _, c := range s.comments {
		if c.ParentID != nil || c.Scope() != scope {
			continue
		}
		if c.Deleted && !parents.Has(c.ID) {
			continue
		}
		out = append(out, *c)
	}
	sortComments(out)
	return out
}

func (s *commentStore) CountTopLevel(_ context.Context, scope domain.Scope) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.topLevel(scope))), nil
}

func (s *commentStore) ListTopLevel(_ context.Context, scope domain.Scope, window domain.PageWindow) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.topLevel(scope)
	start, end := bounds(len(all), window)
	return all[start:end], nil
}

func (s *commentStore) ListChildren(_ context.Context, parentIDs []int64) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parents := domain.NewIDSet(parentIDs...)
	out := []domain.Comment{}
	for _, c := range s.comments {
		if c.ParentID != nil && parents.Has(*c.ParentID) {
			out = append(out, *c)
		}
	}
	sortComments(out)
	return out, nil
}

func sortComments(comments []domain.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].SortsBefore(comments[j])
	})
}
