package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type NotificationRepository interface {
	// CreateIfAbsent inserts the notification unless one already exists for the
	// same (notification_id, notification_type, user_id). It reports whether a row was created.
	CreateIfAbsent(ctx context.Context, notif *domain.Notification) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, exclude []domain.NotificationType, window domain.PageWindow) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, user_id, notification_id, notification_type, content, title, read, timestamp`

// The unique index is declared NULLS NOT DISTINCT so broadcasts dedupe as well.
func (r *notificationRepository) CreateIfAbsent(ctx context.Context, notif *domain.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (user_id, notification_id, notification_type, content, title)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (notification_id, notification_type, user_id) DO NOTHING
		RETURNING id, read, timestamp`

	err := r.db.QueryRowxContext(ctx, query,
		notif.UserID, notif.NotificationID, notif.Type, notif.Content, notif.Title,
	).Scan(&notif.ID, &notif.Read, &notif.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, exclude []domain.NotificationType, window domain.PageWindow) ([]domain.Notification, int64, error) {
	// sqlx.In rejects an empty slice, so the list always carries a placeholder.
	excluded := make([]string, 0, len(exclude)+1)
	excluded = append(excluded, "")
	for _, t := range exclude {
		excluded = append(excluded, string(t))
	}

	countQuery, args, err := sqlx.In(`
		SELECT COUNT(*) FROM notifications
		WHERE user_id = ? AND notification_type NOT IN (?)`, userID, excluded)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), args...); err != nil {
		return nil, 0, err
	}

	query, args, err := sqlx.In(`
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = ? AND notification_type NOT IN (?)
		ORDER BY id DESC
		LIMIT ? OFFSET ?`, userID, excluded, window.Size, window.Offset())
	if err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	err = r.db.SelectContext(ctx, &notifications, r.db.Rebind(query), args...)
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`, userID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
