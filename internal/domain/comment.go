package domain

import (
	"fmt"
	"time"
)

type ScopeKind string

const (
	ScopeHoliday ScopeKind = "holiday"
	ScopePost    ScopeKind = "post"
)

// Scope is the thread a comment lives in: a holiday page or a post.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   int64     `json:"id"`
}

func HolidayScope(id int64) Scope { return Scope{Kind: ScopeHoliday, ID: id} }
func PostScope(id int64) Scope    { return Scope{Kind: ScopePost, ID: id} }

func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

// Comment belongs to exactly one scope. Deleted comments are kept as tombstones.
type Comment struct {
	ID        int64      `json:"id" db:"id"`
	Content   string     `json:"content" db:"content"`
	HolidayID *int64     `json:"holiday_id,omitempty" db:"holiday_id"`
	PostID    *int64     `json:"parent_post_id,omitempty" db:"parent_post_id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	ParentID  *int64     `json:"parent_id,omitempty" db:"parent_id"`
	Timestamp time.Time  `json:"timestamp" db:"timestamp"`
	Votes     int        `json:"votes" db:"votes"`
	Deleted   bool       `json:"deleted" db:"deleted"`
	Reports   int        `json:"reports" db:"reports"`
	Edited    *time.Time `json:"edited,omitempty" db:"edited"`
}

func (c Comment) Scope() Scope {
	if c.PostID != nil {
		return PostScope(*c.PostID)
	}
	if c.HolidayID != nil {
		return HolidayScope(*c.HolidayID)
	}
	return Scope{}
}

// SortsBefore orders siblings by votes descending, then id descending.
func (c Comment) SortsBefore(other Comment) bool {
	if c.Votes != other.Votes {
		return c.Votes > other.Votes
	}
	return c.ID > other.ID
}

type CreateCommentInput struct {
	HolidayID *int64 `json:"holiday_id"`
	PostID    *int64 `json:"post_id"`
	ParentID  *int64 `json:"parent_id"`
	Content   string `json:"content" validate:"required,min=1,max=2000"`
}

func (in CreateCommentInput) Scope() (Scope, error) {
	switch {
	case in.HolidayID != nil && in.PostID == nil:
		return HolidayScope(*in.HolidayID), nil
	case in.PostID != nil && in.HolidayID == nil:
		return PostScope(*in.PostID), nil
	default:
		return Scope{}, ErrInvalidScope
	}
}

type UpdateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
