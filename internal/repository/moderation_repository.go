package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type ModerationRepository interface {
	// Report bumps the target's report counter, records it in the reporter's
	// reported set and optionally blocks the author, all or nothing.
	Report(ctx context.Context, target domain.ReportTarget, reporterID int64, alsoBlock bool) (domain.ReportOutcome, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
}

type moderationRepository struct {
	db *sqlx.DB
}

func NewModerationRepository(db *sqlx.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

type reportTables struct {
	updateQuery string
	recordQuery string
	notFound    error
}

var reportableTargets = map[domain.TargetKind]reportTables{
	domain.TargetComment: {
		updateQuery: `UPDATE comments SET reports = reports + 1 WHERE id = $1 RETURNING reports, user_id`,
		recordQuery: `INSERT INTO profile_reported_comments (user_id, comment_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		notFound:    domain.ErrCommentNotFound,
	},
	domain.TargetPost: {
		updateQuery: `UPDATE posts SET reports = reports + 1 WHERE id = $1 RETURNING reports, user_id`,
		recordQuery: `INSERT INTO profile_reported_posts (user_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		notFound:    domain.ErrPostNotFound,
	},
}

const blockQuery = `INSERT INTO profile_blocked_users (user_id, blocked_user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

func (r *moderationRepository) Report(ctx context.Context, target domain.ReportTarget, reporterID int64, alsoBlock bool) (domain.ReportOutcome, error) {
	tables, ok := reportableTargets[target.Kind]
	if !ok {
		return domain.ReportOutcome{}, fmt.Errorf("%w: %s cannot be reported", domain.ErrValidation, target.Kind)
	}

	var out domain.ReportOutcome
	err := runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, tables.updateQuery, target.ID).Scan(&out.Reports, &out.AuthorID)
		if errors.Is(err, sql.ErrNoRows) {
			return tables.notFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tables.recordQuery, reporterID, target.ID); err != nil {
			return err
		}

		if alsoBlock && out.AuthorID != reporterID {
			if _, err := tx.ExecContext(ctx, blockQuery, reporterID, out.AuthorID); err != nil {
				return err
			}
			out.Blocked = true
		}
		return nil
	})
	if err != nil {
		return domain.ReportOutcome{}, err
	}

	return out, nil
}

func (r *moderationRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	_, err := r.db.ExecContext(ctx, blockQuery, blockerID, blockedID)
	return err
}
