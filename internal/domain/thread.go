package domain

import "time"

// DeletedContent replaces the body of a tombstoned comment.
const DeletedContent = "[deleted]"

// ThreadNode is a comment positioned in a flattened thread.
type ThreadNode struct {
	Comment Comment `json:"comment"`
	Depth   int     `json:"depth"`
}

// CommentView is a comment decorated for a particular viewer.
type CommentView struct {
	ID            int64      `json:"id"`
	Content       string     `json:"content"`
	UserID        int64      `json:"user_id"`
	Username      string     `json:"user"`
	ParentID      *int64     `json:"parent_id,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	TimeSince     string     `json:"time_since"`
	Edited        *time.Time `json:"edited,omitempty"`
	TimeSinceEdit string     `json:"time_since_edit,omitempty"`
	Votes         int        `json:"votes"`
	Deleted       bool       `json:"deleted"`
	Avatar        *string    `json:"avatar"`
	VoteStatus    VoteStatus `json:"vote_status"`
	Blocked       bool       `json:"blocked"`
	Reported      bool       `json:"reported"`
	Depth         int        `json:"depth"`
}

// CommentThread is one top-level comment followed by its descendants in pre-order.
type CommentThread struct {
	Comments []CommentView `json:"comments"`
}
