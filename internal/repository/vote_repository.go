package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type VoteRepository interface {
	// Apply records the voter's choice and adjusts the target's counter, and for
	// comments the author's confetti, in a single transaction.
	Apply(ctx context.Context, target domain.VoteTarget, voterID int64, choice domain.VoteChoice) (domain.VoteOutcome, error)
	// CommentChoices returns the voter's stored choice for each of the given comments.
	CommentChoices(ctx context.Context, voterID int64, commentIDs []int64) (map[int64]domain.VoteChoice, error)
}

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

type voteTables struct {
	lockQuery   string
	prevQuery   string
	updateQuery string
	upsertQuery string
	notFound    error
}

var votableTargets = map[domain.TargetKind]voteTables{
	domain.TargetComment: {
		lockQuery:   `SELECT votes, user_id, holiday_id, parent_post_id FROM comments WHERE id = $1 FOR UPDATE`,
		prevQuery:   `SELECT choice FROM comment_votes WHERE user_id = $1 AND comment_id = $2`,
		updateQuery: `UPDATE comments SET votes = votes + $2 WHERE id = $1 RETURNING votes`,
		upsertQuery: `
			INSERT INTO comment_votes (user_id, comment_id, choice) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, comment_id) DO UPDATE SET choice = EXCLUDED.choice`,
		notFound: domain.ErrCommentNotFound,
	},
	domain.TargetHoliday: {
		lockQuery:   `SELECT votes FROM holidays WHERE id = $1 FOR UPDATE`,
		prevQuery:   `SELECT choice FROM holiday_votes WHERE user_id = $1 AND holiday_id = $2`,
		updateQuery: `UPDATE holidays SET votes = votes + $2 WHERE id = $1 RETURNING votes`,
		upsertQuery: `
			INSERT INTO holiday_votes (user_id, holiday_id, choice) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, holiday_id) DO UPDATE SET choice = EXCLUDED.choice`,
		notFound: domain.ErrHolidayNotFound,
	},
}

func (r *voteRepository) Apply(ctx context.Context, target domain.VoteTarget, voterID int64, choice domain.VoteChoice) (domain.VoteOutcome, error) {
	tables, ok := votableTargets[target.Kind]
	if !ok {
		return domain.VoteOutcome{}, fmt.Errorf("%w: %s cannot be voted on", domain.ErrValidation, target.Kind)
	}

	out := domain.VoteOutcome{Target: target, Status: choice.Status()}

	err := runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		if target.Kind == domain.TargetComment {
			var holidayID, postID sql.NullInt64
			err = tx.QueryRowxContext(ctx, tables.lockQuery, target.ID).Scan(&out.Votes, &out.AuthorID, &holidayID, &postID)
			if postID.Valid {
				out.Scope = domain.PostScope(postID.Int64)
			} else if holidayID.Valid {
				out.Scope = domain.HolidayScope(holidayID.Int64)
			}
		} else {
			err = tx.QueryRowxContext(ctx, tables.lockQuery, target.ID).Scan(&out.Votes)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return tables.notFound
		}
		if err != nil {
			return err
		}

		var prev *domain.VoteChoice
		var stored domain.VoteChoice
		err = tx.GetContext(ctx, &stored, tables.prevQuery, voterID, target.ID)
		switch {
		case err == nil:
			prev = &stored
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		delta, changed := domain.VoteDelta(prev, choice)
		if !changed {
			return nil
		}
		out.Delta, out.Changed = delta, true

		if err := tx.GetContext(ctx, &out.Votes, tables.updateQuery, target.ID, delta); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tables.upsertQuery, voterID, target.ID, choice); err != nil {
			return err
		}

		if target.Kind == domain.TargetComment {
			_, err := tx.ExecContext(ctx,
				`UPDATE user_profiles SET confetti = confetti + $2 WHERE user_id = $1`,
				out.AuthorID, delta)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.VoteOutcome{}, err
	}

	return out, nil
}

func (r *voteRepository) CommentChoices(ctx context.Context, voterID int64, commentIDs []int64) (map[int64]domain.VoteChoice, error) {
	result := make(map[int64]domain.VoteChoice, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT comment_id, choice FROM comment_votes
		WHERE user_id = ? AND comment_id IN (?)`, voterID, commentIDs)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			commentID int64
			choice    domain.VoteChoice
		)
		if err := rows.Scan(&commentID, &choice); err != nil {
			return nil, err
		}
		result[commentID] = choice
	}
	return result, rows.Err()
}
