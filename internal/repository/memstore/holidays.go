package memstore

import (
	"context"
	"strings"

	"holidaily/internal/domain"
)

type holidayStore struct{ *Store }

func (s *holidayStore) Create(_ context.Context, holiday *domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	holiday.ID = s.nextID("holidays", 0)
	holiday.CreatedAt = s.now()
	stored := *holiday
	s.holidays[holiday.ID] = &stored
	return nil
}

func (s *holidayStore) GetByID(_ context.Context, id int64) (*domain.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holidays[id]
	if !ok {
		return nil, nil
	}
	out := *h
	return &out, nil
}

func (s *holidayStore) FindPending(_ context.Context, creatorID int64, name string) (*domain.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.holidays {
		if !h.Active && h.CreatorID != nil && *h.CreatorID == creatorID && strings.EqualFold(h.Name, name) {
			out := *h
			return &out, nil
		}
	}
	return nil, nil
}

func (s *holidayStore) Activate(_ context.Context, id int64, reward int) (*domain.Holiday, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holidays[id]
	if !ok {
		return nil, false, domain.ErrHolidayNotFound
	}

	awarded := h.Activate()
	if awarded {
		if p, ok := s.profiles[*h.CreatorID]; ok {
			p.Confetti += reward
		}
	}
	out := *h
	return &out, awarded, nil
}
