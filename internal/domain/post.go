package domain

import "time"

type Post struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	HolidayID int64      `json:"holiday_id" db:"holiday_id"`
	Content   string     `json:"content" db:"content"`
	Timestamp time.Time  `json:"timestamp" db:"timestamp"`
	Likes     int        `json:"likes" db:"likes"`
	Deleted   bool       `json:"deleted" db:"deleted"`
	Reports   int        `json:"reports" db:"reports"`
	Edited    *time.Time `json:"edited,omitempty" db:"edited"`
}

type CreatePostInput struct {
	HolidayID int64  `json:"holiday_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,min=1,max=2000"`
}

type LikePostInput struct {
	Like bool `json:"like"`
}

// LikeOutcome reports the post's like count after a like toggle.
type LikeOutcome struct {
	PostID  int64 `json:"post_id"`
	Likes   int   `json:"likes"`
	Liked   bool  `json:"liked"`
	Changed bool  `json:"-"`
}
