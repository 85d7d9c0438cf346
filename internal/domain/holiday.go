package domain

import "time"

type Holiday struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Date           time.Time `json:"date" db:"date"`
	Votes          int       `json:"votes" db:"votes"`
	Active         bool      `json:"active" db:"active"`
	CreatorID      *int64    `json:"creator_id,omitempty" db:"creator_id"`
	CreatorAwarded bool      `json:"-" db:"creator_awarded"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Activate flips a pending holiday live. It reports whether the creator is
// owed the submission reward; the reward flag is set at most once.
func (h *Holiday) Activate() (award bool) {
	if h.Active {
		return false
	}
	h.Active = true
	if h.CreatorID != nil && !h.CreatorAwarded {
		h.CreatorAwarded = true
		return true
	}
	return false
}

type SubmitHolidayInput struct {
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"required,max=2000"`
	Date        time.Time `json:"date" validate:"required"`
}
