package memstore

import (
	"context"

	"holidaily/internal/domain"
)

type deviceStore struct{ *Store }

func (s *deviceStore) Register(_ context.Context, device *domain.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.devices {
		if d.RegistrationID == device.RegistrationID {
			d.UserID, d.Platform, d.Active = device.UserID, device.Platform, true
			*device = *d
			return nil
		}
	}

	device.ID = s.nextID("devices", 0)
	device.Active = true
	stored := *device
	s.devices[device.ID] = &stored
	return nil
}

func (s *deviceStore) GetActive(_ context.Context, userID int64, platform domain.Platform) (*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *domain.Device
	for _, d := range s.devices {
		if d.UserID == userID && d.Platform == platform && d.Active {
			if found == nil || d.ID > found.ID {
				found = d
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	out := *found
	return &out, nil
}

func (s *deviceStore) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.devices[id]; ok {
		d.Active = false
	}
	return nil
}
