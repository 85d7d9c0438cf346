package handler

import (
	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/service/facade"
	"holidaily/internal/service/holiday"
)

type HolidayHandler struct {
	holidayService holiday.Service
	community      facade.Service
}

func NewHolidayHandler(holidayService holiday.Service, community facade.Service) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService, community: community}
}

func (h *HolidayHandler) Get(c *fiber.Ctx) error {
	holidayID, err := paramID(c, "holidayId", "holiday")
	if err != nil {
		return err
	}

	result, err := h.holidayService.GetByID(c.UserContext(), holidayID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *HolidayHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitHolidayInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.holidayService.Submit(c.UserContext(), middleware.GetCurrentProfile(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *HolidayHandler) Approve(c *fiber.Ctx) error {
	holidayID, err := paramID(c, "holidayId", "holiday")
	if err != nil {
		return err
	}

	result, err := h.holidayService.Approve(c.UserContext(), middleware.GetCurrentProfile(c), holidayID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *HolidayHandler) Vote(c *fiber.Ctx) error {
	holidayID, err := paramID(c, "holidayId", "holiday")
	if err != nil {
		return err
	}
	return vote(c, h.community, domain.VoteTarget{Kind: domain.TargetHoliday, ID: holidayID})
}
