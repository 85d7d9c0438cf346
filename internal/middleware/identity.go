package middleware

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
)

const (
	ProfileContextKey = "profile"

	UsernameHeader = "X-Username"
	DeviceIDHeader = "X-Device-ID"
)

// Identity resolves the caller from the username and device id headers.
// Unknown or missing identities leave the request anonymous.
func Identity(profiles repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Get(UsernameHeader)
		deviceID := c.Get(DeviceIDHeader)
		if username == "" || deviceID == "" {
			return c.Next()
		}

		profile, err := profiles.GetByIdentity(c.UserContext(), username, deviceID)
		if err != nil {
			return err
		}
		if profile != nil {
			c.Locals(ProfileContextKey, profile)
		}

		return c.Next()
	}
}

func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCurrentProfile(c) == nil {
			return Unauthorized("Unknown user or device")
		}
		return c.Next()
	}
}

func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetCurrentProfile(c)
		if profile == nil {
			return Unauthorized("Unknown user or device")
		}
		if !profile.IsStaff {
			return Forbidden("Insufficient permissions for this operation")
		}
		return c.Next()
	}
}

// GetCurrentProfile returns the resolved caller, or nil for anonymous requests.
func GetCurrentProfile(c *fiber.Ctx) *domain.UserProfile {
	profile, ok := c.Locals(ProfileContextKey).(*domain.UserProfile)
	if !ok {
		return nil
	}
	return profile
}
