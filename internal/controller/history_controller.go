package controller

import (
	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	RemoveEntry(ctx *fiber.Ctx) error
}

type historyController struct {
	sessionService service.ISessionService
}

func NewHistoryController(sessionService service.ISessionService) IHistoryController {
	return &historyController{
		sessionService: sessionService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history")
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Clear)
	h.Delete("/:id/:index", c.RemoveEntry)
}

func (c *historyController) Show(ctx *fiber.Ctx) error {
	res, err := c.sessionService.History(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *historyController) Clear(ctx *fiber.Ctx) error {
	if err := c.sessionService.ClearHistory(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(dto.StatusResponse{Status: "ok"})
}

func (c *historyController) RemoveEntry(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return apperror.Validation("Index must be an integer")
	}
	if err := c.sessionService.RemoveQnA(ctx.UserContext(), ctx.Params("id"), index); err != nil {
		return err
	}
	return ctx.JSON(dto.StatusResponse{Status: "ok"})
}
