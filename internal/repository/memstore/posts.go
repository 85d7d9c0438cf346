package memstore

import (
	"context"
	"sort"

	"holidaily/internal/domain"
)

type postStore struct{ *Store }

func (s *postStore) Create(_ context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID("posts", 0)
	post.Timestamp = s.now()
	stored := *post
	s.posts[post.ID] = &stored
	s.postLikes[post.ID] = domain.NewIDSet()
	return nil
}

func (s *postStore) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (s *postStore) ListByHoliday(_ context.Context, holidayID int64, window domain.PageWindow) ([]domain.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []domain.Post
	for _, p := range s.posts {
		if p.HolidayID == holidayID && !p.Deleted {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	start, end := bounds(len(all), window)
	return all[start:end], int64(len(all)), nil
}

func (s *postStore) SetLike(_ context.Context, postID, userID int64, like bool) (domain.LikeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return domain.LikeOutcome{}, domain.ErrPostNotFound
	}

	likers := s.postLikes[postID]
	out := domain.LikeOutcome{PostID: postID, Liked: like}
	switch {
	case like && !likers.Has(userID):
		likers[userID] = struct{}{}
		p.Likes++
		out.Changed = true
	case !like && likers.Has(userID):
		delete(likers, userID)
		p.Likes--
		out.Changed = true
	}
	out.Likes = p.Likes
	return out, nil
}
