package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"holidaily/internal/domain"
	"holidaily/internal/middleware"
	"holidaily/internal/service"
)

type Handlers struct {
	Comment      *CommentHandler
	Post         *PostHandler
	Holiday      *HolidayHandler
	Notification *NotificationHandler
	User         *UserHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Comment:      NewCommentHandler(services.Community),
		Post:         NewPostHandler(services.Community),
		Holiday:      NewHolidayHandler(services.Holiday, services.Community),
		Notification: NewNotificationHandler(services.Notification),
		User:         NewUserHandler(services.Community, services.Avatar),
	}
}

func getPageWindow(c *fiber.Ctx) domain.PageWindow {
	window := domain.DefaultPageWindow()

	if page := c.QueryInt("page", 0); page >= 0 {
		window.Index = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		window.Size = pageSize
	}

	window.Validate()
	return window
}

func paramID(c *fiber.Ctx, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
