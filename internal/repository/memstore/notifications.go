package memstore

import (
	"context"

	"holidaily/internal/domain"
)

type notificationStore struct{ *Store }

func keyOf(n *domain.Notification) notificationKey {
	key := notificationKey{notificationID: n.NotificationID, kind: n.Type, broadcast: n.UserID == nil}
	if n.UserID != nil {
		key.userID = *n.UserID
	}
	return key
}

func (s *notificationStore) CreateIfAbsent(_ context.Context, notif *domain.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(notif)
	if _, exists := s.notifKeys[key]; exists {
		return false, nil
	}

	notif.ID = s.nextID("notifications", 0)
	notif.Timestamp = s.now()
	notif.Read = false
	stored := *notif
	s.notifications[notif.ID] = &stored
	s.notifKeys[key] = notif.ID
	return true, nil
}

func (s *notificationStore) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}
	out := *n
	return &out, nil
}

func (s *notificationStore) ListByUser(_ context.Context, userID int64, exclude []domain.NotificationType, window domain.PageWindow) ([]domain.Notification, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skip := make(map[domain.NotificationType]bool, len(exclude))
	for _, t := range exclude {
		skip[t] = true
	}

	var all []domain.Notification
	for id := s.seq["notifications"]; id > 0; id-- {
		n, ok := s.notifications[id]
		if !ok || n.UserID == nil || *n.UserID != userID || skip[n.Type] {
			continue
		}
		all = append(all, *n)
	}

	start, end := bounds(len(all), window)
	return all[start:end], int64(len(all)), nil
}

func (s *notificationStore) MarkAsRead(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID == nil || *n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (s *notificationStore) MarkAllAsRead(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID != nil && *n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (s *notificationStore) CountUnread(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, n := range s.notifications {
		if n.UserID != nil && *n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}
