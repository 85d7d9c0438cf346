package domain

import "sort"

// IDSet is an unordered set of entity ids.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Slice() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type UserProfile struct {
	UserID         int64    `json:"user_id" db:"user_id"`
	Username       string   `json:"username" db:"username"`
	Email          string   `json:"-" db:"email"`
	Confetti       int      `json:"confetti" db:"confetti"`
	DeviceID       string   `json:"-" db:"device_id"`
	Platform       Platform `json:"platform" db:"platform"`
	Version        string   `json:"version" db:"version"`
	LoggedOut      bool     `json:"-" db:"logged_out"`
	Active         bool     `json:"-" db:"active"`
	EmailsEnabled  bool     `json:"emails_enabled" db:"emails_enabled"`
	DeviceActive   bool     `json:"-" db:"device_active"`
	Avatar         *string  `json:"-" db:"avatar"`
	AvatarApproved bool     `json:"avatar_approved" db:"avatar_approved"`
	IsStaff        bool     `json:"-" db:"is_staff"`

	BlockedUsers     IDSet `json:"-" db:"-"`
	ReportedComments IDSet `json:"-" db:"-"`
	ReportedPosts    IDSet `json:"-" db:"-"`
}

// CanPost rejects banned accounts.
func (p *UserProfile) CanPost() error {
	if !p.Active {
		return ErrUserBanned
	}
	return nil
}

// Reachable reports whether the profile accepts email.
func (p *UserProfile) Reachable() bool {
	return p.EmailsEnabled && p.Email != ""
}
