package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"holidaily/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string, editedAt time.Time) error
	SoftDelete(ctx context.Context, id int64) error
	CountTopLevel(ctx context.Context, scope domain.Scope) (int64, error)
	// ListTopLevel returns root comments of a scope ordered by votes then id, both descending.
	ListTopLevel(ctx context.Context, scope domain.Scope, window domain.PageWindow) ([]domain.Comment, error)
	// ListChildren returns direct replies of the given comments, deleted ones included.
	ListChildren(ctx context.Context, parentIDs []int64) ([]domain.Comment, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, content, holiday_id, parent_post_id, user_id, parent_id, timestamp, votes, deleted, reports, edited`

func scopeColumn(scope domain.Scope) (string, error) {
	switch scope.Kind {
	case domain.ScopeHoliday:
		return "holiday_id", nil
	case domain.ScopePost:
		return "parent_post_id", nil
	default:
		return "", fmt.Errorf("unknown comment scope %q", scope.Kind)
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (content, holiday_id, parent_post_id, user_id, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp, votes, deleted, reports`

	return r.db.QueryRowxContext(ctx, query,
		comment.Content, comment.HolidayID, comment.PostID, comment.UserID, comment.ParentID,
	).Scan(&comment.ID, &comment.Timestamp, &comment.Votes, &comment.Deleted, &comment.Reports)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string, editedAt time.Time) error {
	query := `UPDATE comments SET content = $2, edited = $3 WHERE id = $1 AND deleted = false`
	res, err := r.db.ExecContext(ctx, query, id, content, editedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE comments SET deleted = true WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// visibleRoot matches top-level comments, leaving out deleted ones without replies.
const visibleRoot = `c.parent_id IS NULL
	AND (NOT c.deleted OR EXISTS (SELECT 1 FROM comments r WHERE r.parent_id = c.id))`

func (r *commentRepository) CountTopLevel(ctx context.Context, scope domain.Scope) (int64, error) {
	column, err := scopeColumn(scope)
	if err != nil {
		return 0, err
	}

	var total int64
	query := `SELECT COUNT(*) FROM comments c WHERE c.` + column + ` = $1 AND ` + visibleRoot
	err = r.db.GetContext(ctx, &total, query, scope.ID)
	return total, err
}

func (r *commentRepository) ListTopLevel(ctx context.Context, scope domain.Scope, window domain.PageWindow) ([]domain.Comment, error) {
	column, err := scopeColumn(scope)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + commentColumns + ` FROM comments c
		WHERE c.` + column + ` = $1 AND ` + visibleRoot + `
		ORDER BY c.votes DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	var comments []domain.Comment
	err = r.db.SelectContext(ctx, &comments, query, scope.ID, window.Size, window.Offset())
	return comments, err
}

func (r *commentRepository) ListChildren(ctx context.Context, parentIDs []int64) ([]domain.Comment, error) {
	if len(parentIDs) == 0 {
		return []domain.Comment{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+commentColumns+` FROM comments
		WHERE parent_id IN (?)
		ORDER BY votes DESC, id DESC`, parentIDs)
	if err != nil {
		return nil, err
	}

	query = r.db.Rebind(query)
	var comments []domain.Comment
	err = r.db.SelectContext(ctx, &comments, query, args...)
	return comments, err
}
