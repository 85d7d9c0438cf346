package domain

import "time"

type NotificationType string

const (
	NotifComment     NotificationType = "comment"
	NotifNews        NotificationType = "news"
	NotifHoliday     NotificationType = "holiday"
	NotifPost        NotificationType = "post"
	NotifLike        NotificationType = "like"
	NotifLikeComment NotificationType = "like_comment"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifComment, NotifNews, NotifHoliday, NotifPost, NotifLike, NotifLikeComment:
		return true
	}
	return false
}

// Notification is unique per (NotificationID, Type, UserID). A nil UserID is a broadcast.
type Notification struct {
	ID             int64            `json:"id" db:"id"`
	UserID         *int64           `json:"user_id,omitempty" db:"user_id"`
	NotificationID int64            `json:"notification_id" db:"notification_id"`
	Type           NotificationType `json:"notification_type" db:"notification_type"`
	Content        string           `json:"content" db:"content"`
	Title          string           `json:"title" db:"title"`
	Read           bool             `json:"read" db:"read"`
	Timestamp      time.Time        `json:"timestamp" db:"timestamp"`
}

// NotificationView adds routing data resolved from the referenced entity.
type NotificationView struct {
	Notification
	HolidayID *int64 `json:"holiday_id,omitempty"`
	PostID    *int64 `json:"post_id,omitempty"`
	TimeSince string `json:"time_since"`
}
