package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	ListByHoliday(ctx context.Context, holidayID int64, window domain.PageWindow) ([]domain.Post, int64, error)
	// SetLike adds or removes the user from the post's likers and adjusts the counter.
	SetLike(ctx context.Context, postID, userID int64, like bool) (domain.LikeOutcome, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, holiday_id, content, timestamp, likes, deleted, reports, edited`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (user_id, holiday_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp, likes, deleted, reports`

	return r.db.QueryRowxContext(ctx, query,
		post.UserID, post.HolidayID, post.Content,
	).Scan(&post.ID, &post.Timestamp, &post.Likes, &post.Deleted, &post.Reports)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByHoliday(ctx context.Context, holidayID int64, window domain.PageWindow) ([]domain.Post, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM posts WHERE holiday_id = $1 AND deleted = false`
	if err := r.db.GetContext(ctx, &total, countQuery, holidayID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE holiday_id = $1 AND deleted = false
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`

	var posts []domain.Post
	err := r.db.SelectContext(ctx, &posts, query, holidayID, window.Size, window.Offset())
	return posts, total, err
}

func (r *postRepository) SetLike(ctx context.Context, postID, userID int64, like bool) (domain.LikeOutcome, error) {
	out := domain.LikeOutcome{PostID: postID, Liked: like}

	err := runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &out.Likes,
			`SELECT likes FROM posts WHERE id = $1 FOR UPDATE`, postID,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrPostNotFound
			}
			return err
		}

		var (
			res sql.Result
			err error
		)
		if like {
			res, err = tx.ExecContext(ctx,
				`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				postID, userID)
		} else {
			res, err = tx.ExecContext(ctx,
				`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
				postID, userID)
		}
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		delta := 1
		if !like {
			delta = -1
		}
		out.Changed = true
		return tx.GetContext(ctx, &out.Likes,
			`UPDATE posts SET likes = likes + $2 WHERE id = $1 RETURNING likes`, postID, delta)
	})

	return out, err
}
