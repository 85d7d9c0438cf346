package memstore

import (
	"context"

	"holidaily/internal/domain"
)

type profileStore struct{ *Store }

func (s *profileStore) GetByUserID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return cloneProfile(p), nil
}

func (s *profileStore) GetByIdentity(_ context.Context, username, deviceID string) (*domain.UserProfile, error) {
	if username == "" || deviceID == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Username == username && p.DeviceID == deviceID {
			return cloneProfile(p), nil
		}
	}
	return nil, nil
}

func (s *profileStore) GetByUserIDs(_ context.Context, userIDs []int64) (map[int64]*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int64]*domain.UserProfile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (s *profileStore) GetByUsernames(_ context.Context, usernames []string) ([]domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]struct{}, len(usernames))
	for _, name := range usernames {
		wanted[name] = struct{}{}
	}

	out := []domain.UserProfile{}
	for _, p := range s.profiles {
		if _, ok := wanted[p.Username]; ok {
			out = append(out, *cloneProfile(p))
		}
	}
	return out, nil
}

func (s *profileStore) update(userID int64, fn func(p *domain.UserProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	fn(p)
	return nil
}

func (s *profileStore) SetDeviceActive(_ context.Context, userID int64, active bool) error {
	return s.update(userID, func(p *domain.UserProfile) { p.DeviceActive = active })
}

func (s *profileStore) SetEmailsEnabled(_ context.Context, userID int64, enabled bool) error {
	return s.update(userID, func(p *domain.UserProfile) { p.EmailsEnabled = enabled })
}

func (s *profileStore) SetAvatar(_ context.Context, userID int64, path string) error {
	return s.update(userID, func(p *domain.UserProfile) {
		p.Avatar = &path
		p.AvatarApproved = false
	})
}

func (s *profileStore) ApproveAvatar(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok || p.Avatar == nil {
		return domain.ErrProfileNotFound
	}
	p.AvatarApproved = true
	return nil
}
