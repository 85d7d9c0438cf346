package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Holiday      HolidayRepository
	Comment      CommentRepository
	Post         PostRepository
	Profile      ProfileRepository
	Vote         VoteRepository
	Notification NotificationRepository
	Device       DeviceRepository
	Moderation   ModerationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Holiday:      NewHolidayRepository(db),
		Comment:      NewCommentRepository(db),
		Post:         NewPostRepository(db),
		Profile:      NewProfileRepository(db),
		Vote:         NewVoteRepository(db),
		Notification: NewNotificationRepository(db),
		Device:       NewDeviceRepository(db),
		Moderation:   NewModerationRepository(db),
	}
}

// runInTx commits when fn returns nil and rolls back otherwise.
func runInTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
