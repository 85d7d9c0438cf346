package handler

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/service/facade"
)

type CommentHandler struct {
	community facade.Service
}

func NewCommentHandler(community facade.Service) *CommentHandler {
	return &CommentHandler{community: community}
}

func (h *CommentHandler) ListForHoliday(c *fiber.Ctx) error {
	holidayID, err := paramID(c, "holidayId", "holiday")
	if err != nil {
		return err
	}
	return h.list(c, domain.HolidayScope(holidayID))
}

func (h *CommentHandler) ListForPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId", "post")
	if err != nil {
		return err
	}
	return h.list(c, domain.PostScope(postID))
}

func (h *CommentHandler) list(c *fiber.Ctx, scope domain.Scope) error {
	result, err := h.community.ListComments(c.UserContext(), scope, getPageWindow(c), middleware.GetCurrentProfile(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.community.PostComment(c.UserContext(), middleware.GetCurrentProfile(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	var input domain.UpdateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.community.EditComment(c.UserContext(), middleware.GetCurrentProfile(c), commentID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	if err := h.community.DeleteComment(c.UserContext(), middleware.GetCurrentProfile(c), commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *CommentHandler) Vote(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}
	return vote(c, h.community, domain.VoteTarget{Kind: domain.TargetComment, ID: commentID})
}

func (h *CommentHandler) Report(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}
	return report(c, h.community, domain.ReportTarget{Kind: domain.TargetComment, ID: commentID})
}

func vote(c *fiber.Ctx, community facade.Service, target domain.VoteTarget) error {
	var input domain.VoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Choice == nil {
		return middleware.BadRequest("choice is required")
	}

	outcome, err := community.Vote(c.UserContext(), middleware.GetCurrentProfile(c), target, *input.Choice)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

func report(c *fiber.Ctx, community facade.Service, target domain.ReportTarget) error {
	var input domain.ReportInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	outcome, err := community.Report(c.UserContext(), middleware.GetCurrentProfile(c), target, input.Block)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}
