package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrBanned     = errors.New("banned user")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrInvalidVoteChoice = fmt.Errorf("%w: invalid vote choice", ErrValidation)
	ErrInvalidScope      = fmt.Errorf("%w: exactly one of holiday_id or post_id is required", ErrValidation)
	ErrParentScope       = fmt.Errorf("%w: parent comment belongs to a different thread", ErrValidation)
	ErrEmptyContent      = fmt.Errorf("%w: content is required", ErrValidation)
	ErrSelfBlock         = fmt.Errorf("%w: cannot block yourself", ErrValidation)

	ErrHolidayNotFound      = fmt.Errorf("holiday %w", ErrNotFound)
	ErrCommentNotFound      = fmt.Errorf("comment %w", ErrNotFound)
	ErrPostNotFound         = fmt.Errorf("post %w", ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("profile %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	ErrNotOwner         = fmt.Errorf("%w: requester does not own this content", ErrPermission)
	ErrIdentityRequired = fmt.Errorf("%w: a registered device is required", ErrPermission)
	ErrStaffRequired    = fmt.Errorf("%w: staff only", ErrPermission)
	ErrUserBanned       = fmt.Errorf("%w: this account can no longer post", ErrBanned)

	ErrPendingHoliday = fmt.Errorf("%w: a holiday with this name is already awaiting approval", ErrConflict)
)

// NewValidationError wraps a field-level message in the validation kind.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
