package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"holidaily/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var domainStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrBanned, fiber.StatusForbidden, "BANNED"},
	{domain.ErrPermission, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	}
	return "INTERNAL_ERROR"
}

// NewErrorHandler maps domain error kinds and fiber errors to JSON responses.
// Anything else is a 500 whose cause is logged under the response trace id.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	logger = logger.Named("http")

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"

		var fe *fiber.Error
		matched := false
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			errorCode = fiberCode(code)
			matched = true
		} else {
			for _, m := range domainStatus {
				if errors.Is(err, m.kind) {
					code = m.status
					message = err.Error()
					errorCode = m.code
					matched = true
					break
				}
			}
		}

		traceID := uuid.New().String()[:8]

		if !matched || code >= fiber.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
		})
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
