package handler

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/middleware"
	"holidaily/internal/service/avatar"
	"holidaily/internal/service/facade"
)

type UserHandler struct {
	community     facade.Service
	avatarService avatar.Service
}

func NewUserHandler(community facade.Service, avatarService avatar.Service) *UserHandler {
	return &UserHandler{community: community, avatarService: avatarService}
}

func (h *UserHandler) Block(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.community.BlockUser(c.UserContext(), middleware.GetCurrentProfile(c), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	src, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer src.Close()

	url, err := h.avatarService.Upload(
		c.UserContext(),
		middleware.GetCurrentProfile(c),
		src,
		file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func (h *UserHandler) ApproveAvatar(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.avatarService.Approve(c.UserContext(), middleware.GetCurrentProfile(c), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
