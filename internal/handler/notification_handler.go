package handler

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	profile := middleware.GetCurrentProfile(c)

	result, err := h.notificationService.List(c.UserContext(), profile.UserID, getPageWindow(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	profile := middleware.GetCurrentProfile(c)

	count, err := h.notificationService.UnreadCount(c.UserContext(), profile.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := paramID(c, "notificationId", "notification")
	if err != nil {
		return err
	}

	profile := middleware.GetCurrentProfile(c)
	if err := h.notificationService.MarkAsRead(c.UserContext(), notifID, profile.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	profile := middleware.GetCurrentProfile(c)
	if err := h.notificationService.MarkAllAsRead(c.UserContext(), profile.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) Unsubscribe(c *fiber.Ctx) error {
	profile := middleware.GetCurrentProfile(c)
	if err := h.notificationService.Unsubscribe(c.UserContext(), profile.UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) RegisterDevice(c *fiber.Ctx) error {
	var input domain.RegisterDeviceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile := middleware.GetCurrentProfile(c)
	device, err := h.notificationService.RegisterDevice(c.UserContext(), profile.UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}
