package domain

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Device is a push registration for a user.
type Device struct {
	ID             int64    `json:"id" db:"id"`
	UserID         int64    `json:"user_id" db:"user_id"`
	Platform       Platform `json:"platform" db:"platform"`
	RegistrationID string   `json:"registration_id" db:"registration_id"`
	Active         bool     `json:"active" db:"active"`
}

type RegisterDeviceInput struct {
	Platform       Platform `json:"platform" validate:"required,oneof=ios android"`
	RegistrationID string   `json:"registration_id" validate:"required,max=512"`
}
