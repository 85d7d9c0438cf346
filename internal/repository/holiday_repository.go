package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) error
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	FindPending(ctx context.Context, creatorID int64, name string) (*domain.Holiday, error)
	// Activate makes the holiday live and credits the creator's confetti with
	// reward when owed. It reports whether the reward was granted.
	Activate(ctx context.Context, id int64, reward int) (*domain.Holiday, bool, error)
}

type holidayRepository struct {
	db *sqlx.DB
}

func NewHolidayRepository(db *sqlx.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

const holidayColumns = `id, name, description, date, votes, active, creator_id, creator_awarded, created_at`

func (r *holidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	query := `
		INSERT INTO holidays (name, description, date, active, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, votes, creator_awarded, created_at`

	return r.db.QueryRowxContext(ctx, query,
		holiday.Name, holiday.Description, holiday.Date, holiday.Active, holiday.CreatorID,
	).Scan(&holiday.ID, &holiday.Votes, &holiday.CreatorAwarded, &holiday.CreatedAt)
}

func (r *holidayRepository) GetByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	var holiday domain.Holiday
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`

	err := r.db.GetContext(ctx, &holiday, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepository) FindPending(ctx context.Context, creatorID int64, name string) (*domain.Holiday, error) {
	var holiday domain.Holiday
	query := `
		SELECT ` + holidayColumns + ` FROM holidays
		WHERE creator_id = $1 AND active = false AND LOWER(name) = LOWER($2)
		LIMIT 1`

	err := r.db.GetContext(ctx, &holiday, query, creatorID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepository) Activate(ctx context.Context, id int64, reward int) (*domain.Holiday, bool, error) {
	var (
		holiday domain.Holiday
		awarded bool
	)

	err := runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &holiday, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrHolidayNotFound
			}
			return err
		}

		awarded = holiday.Activate()
		if _, err := tx.ExecContext(ctx,
			`UPDATE holidays SET active = $2, creator_awarded = $3 WHERE id = $1`,
			id, holiday.Active, holiday.CreatorAwarded,
		); err != nil {
			return err
		}

		if awarded {
			_, err := tx.ExecContext(ctx,
				`UPDATE user_profiles SET confetti = confetti + $2 WHERE user_id = $1`,
				*holiday.CreatorID, reward,
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &holiday, awarded, nil
}
