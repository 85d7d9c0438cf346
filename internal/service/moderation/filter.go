package moderation

import "holidaily/internal/domain"

// Filter answers per-viewer visibility questions.
type Filter struct {
	viewer *domain.UserProfile
}

// NewFilter builds a filter for viewer. A nil viewer hides nothing.
func NewFilter(viewer *domain.UserProfile) Filter {
	return Filter{viewer: viewer}
}

func (f Filter) BlockedAuthor(authorID int64) bool {
	return f.viewer != nil && f.viewer.BlockedUsers.Has(authorID)
}

func (f Filter) ReportedComment(commentID int64) bool {
	return f.viewer != nil && f.viewer.ReportedComments.Has(commentID)
}

func (f Filter) ReportedPost(postID int64) bool {
	return f.viewer != nil && f.viewer.ReportedPosts.Has(postID)
}

// Comment returns the blocked and reported flags for a comment.
func (f Filter) Comment(c domain.Comment) (blocked, reported bool) {
	return f.BlockedAuthor(c.UserID), f.ReportedComment(c.ID)
}

// HidePost reports whether a post should be left out of the viewer's feed.
func (f Filter) HidePost(p domain.Post) bool {
	return f.BlockedAuthor(p.UserID) || f.ReportedPost(p.ID)
}

// IsViewer reports whether userID is the viewer.
func (f Filter) IsViewer(userID int64) bool {
	return f.viewer != nil && f.viewer.UserID == userID
}
