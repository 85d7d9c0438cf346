package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type DeviceRepository interface {
	// Register upserts a push registration by its registration id.
	Register(ctx context.Context, device *domain.Device) error
	GetActive(ctx context.Context, userID int64, platform domain.Platform) (*domain.Device, error)
	Deactivate(ctx context.Context, id int64) error
}

type deviceRepository struct {
	db *sqlx.DB
}

func NewDeviceRepository(db *sqlx.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Register(ctx context.Context, device *domain.Device) error {
	query := `
		INSERT INTO devices (user_id, platform, registration_id, active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (registration_id) DO UPDATE
		SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, active = true
		RETURNING id, active`

	return r.db.QueryRowxContext(ctx, query,
		device.UserID, device.Platform, device.RegistrationID,
	).Scan(&device.ID, &device.Active)
}

func (r *deviceRepository) GetActive(ctx context.Context, userID int64, platform domain.Platform) (*domain.Device, error) {
	var device domain.Device
	query := `
		SELECT id, user_id, platform, registration_id, active FROM devices
		WHERE user_id = $1 AND platform = $2 AND active = true
		ORDER BY id DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &device, query, userID, platform)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) Deactivate(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE devices SET active = false WHERE id = $1`, id)
	return err
}
