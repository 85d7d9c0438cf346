package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type ProfileRepository interface {
	// GetByUserID loads a profile together with its blocked and reported sets.
	GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	// GetByIdentity resolves a caller from the username and device id a client presents.
	GetByIdentity(ctx context.Context, username, deviceID string) (*domain.UserProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*domain.UserProfile, error)
	GetByUsernames(ctx context.Context, usernames []string) ([]domain.UserProfile, error)
	SetDeviceActive(ctx context.Context, userID int64, active bool) error
	SetEmailsEnabled(ctx context.Context, userID int64, enabled bool) error
	SetAvatar(ctx context.Context, userID int64, path string) error
	ApproveAvatar(ctx context.Context, userID int64) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileSelect = `
	SELECT u.id AS user_id, u.username, u.email, u.is_staff,
		p.confetti, p.device_id, p.platform, p.version, p.logged_out, p.active,
		p.emails_enabled, p.device_active, p.avatar, p.avatar_approved
	FROM users u
	INNER JOIN user_profiles p ON p.user_id = u.id`

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.GetContext(ctx, &profile, profileSelect+` WHERE u.id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadSets(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByIdentity(ctx context.Context, username, deviceID string) (*domain.UserProfile, error) {
	if username == "" || deviceID == "" {
		return nil, nil
	}

	var profile domain.UserProfile
	err := r.db.GetContext(ctx, &profile, profileSelect+` WHERE u.username = $1 AND p.device_id = $2`, username, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadSets(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) loadSets(ctx context.Context, profile *domain.UserProfile) error {
	sets := []struct {
		query string
		dest  *domain.IDSet
	}{
		{`SELECT blocked_user_id FROM profile_blocked_users WHERE user_id = $1`, &profile.BlockedUsers},
		{`SELECT comment_id FROM profile_reported_comments WHERE user_id = $1`, &profile.ReportedComments},
		{`SELECT post_id FROM profile_reported_posts WHERE user_id = $1`, &profile.ReportedPosts},
	}

	for _, set := range sets {
		var ids []int64
		if err := r.db.SelectContext(ctx, &ids, set.query, profile.UserID); err != nil {
			return err
		}
		*set.dest = domain.NewIDSet(ids...)
	}
	return nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*domain.UserProfile, error) {
	result := make(map[int64]*domain.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(profileSelect+` WHERE u.id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}

	var profiles []domain.UserProfile
	if err := r.db.SelectContext(ctx, &profiles, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].UserID] = &profiles[i]
	}
	return result, nil
}

func (r *profileRepository) GetByUsernames(ctx context.Context, usernames []string) ([]domain.UserProfile, error) {
	if len(usernames) == 0 {
		return []domain.UserProfile{}, nil
	}

	query, args, err := sqlx.In(profileSelect+` WHERE u.username IN (?)`, usernames)
	if err != nil {
		return nil, err
	}

	var profiles []domain.UserProfile
	err = r.db.SelectContext(ctx, &profiles, r.db.Rebind(query), args...)
	return profiles, err
}

func (r *profileRepository) SetDeviceActive(ctx context.Context, userID int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE user_profiles SET device_active = $2 WHERE user_id = $1`, userID, active)
	return err
}

func (r *profileRepository) SetEmailsEnabled(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE user_profiles SET emails_enabled = $2 WHERE user_id = $1`, userID, enabled)
	return err
}

func (r *profileRepository) SetAvatar(ctx context.Context, userID int64, path string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET avatar = $2, avatar_approved = false WHERE user_id = $1`, userID, path)
	return err
}

func (r *profileRepository) ApproveAvatar(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET avatar_approved = true WHERE user_id = $1 AND avatar IS NOT NULL`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
