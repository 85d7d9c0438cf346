package handler

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/service/facade"
)

type PostHandler struct {
	community facade.Service
}

func NewPostHandler(community facade.Service) *PostHandler {
	return &PostHandler{community: community}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	post, err := h.community.PostUpdate(c.UserContext(), middleware.GetCurrentProfile(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListForHoliday(c *fiber.Ctx) error {
	holidayID, err := paramID(c, "holidayId", "holiday")
	if err != nil {
		return err
	}

	result, err := h.community.ListPosts(c.UserContext(), holidayID, getPageWindow(c), middleware.GetCurrentProfile(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId", "post")
	if err != nil {
		return err
	}

	input := domain.LikePostInput{Like: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	outcome, err := h.community.LikePost(c.UserContext(), middleware.GetCurrentProfile(c), postID, input.Like)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

func (h *PostHandler) Report(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId", "post")
	if err != nil {
		return err
	}
	return report(c, h.community, domain.ReportTarget{Kind: domain.TargetPost, ID: postID})
}
