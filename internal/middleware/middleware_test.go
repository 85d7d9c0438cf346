package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/repository/memstore"
)

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zap.NewNop())})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.ErrInvalidVoteChoice, fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped not found", fmt.Errorf("failed to apply vote: %w", domain.ErrCommentNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"permission", domain.ErrNotOwner, fiber.StatusForbidden, "FORBIDDEN"},
		{"banned", domain.ErrUserBanned, fiber.StatusForbidden, "BANNED"},
		{"conflict", domain.ErrPendingHoliday, fiber.StatusConflict, "CONFLICT"},
		{"fiber error", middleware.BadRequest("Invalid comment ID"), fiber.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("db exploded"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := errorApp(tt.err).Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Len(t, body.TraceID, 8)
			if tt.status == fiber.StatusInternalServerError {
				assert.Equal(t, "Internal server error", body.Message)
			}
		})
	}
}

func identityApp(guards ...fiber.Handler) *fiber.App {
	store := memstore.New()
	store.PutProfile(domain.UserProfile{UserID: 1, Username: "alice", DeviceID: "dev-a", Active: true})
	store.PutProfile(domain.UserProfile{UserID: 2, Username: "mod", DeviceID: "dev-m", Active: true, IsStaff: true})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zap.NewNop())})
	handlers := append([]fiber.Handler{middleware.Identity(store.Repositories().Profile)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		profile := middleware.GetCurrentProfile(c)
		if profile == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(profile.Username)
	})
	app.Get("/", handlers...)
	return app
}

func call(t *testing.T, app *fiber.App, username, deviceID string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if username != "" {
		req.Header.Set(middleware.UsernameHeader, username)
	}
	if deviceID != "" {
		req.Header.Set(middleware.DeviceIDHeader, deviceID)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestIdentity(t *testing.T) {
	app := identityApp()

	status, body := call(t, app, "alice", "dev-a")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", body)

	_, body = call(t, app, "alice", "dev-other")
	assert.Equal(t, "anonymous", body)

	_, body = call(t, app, "", "")
	assert.Equal(t, "anonymous", body)
}

func TestRequireIdentity(t *testing.T) {
	app := identityApp(middleware.RequireIdentity())

	status, _ := call(t, app, "alice", "dev-a")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, "alice", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireStaff(t *testing.T) {
	app := identityApp(middleware.RequireStaff())

	status, body := call(t, app, "mod", "dev-m")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "mod", body)

	status, _ = call(t, app, "alice", "dev-a")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, app, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
