package controller

import (
	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDiagramController interface {
	RegisterRoutes(r fiber.Router)
	RenderPost(ctx *fiber.Ctx) error
	RenderGet(ctx *fiber.Ctx) error
}

type diagramController struct {
	diagramService service.IDiagramService
}

func NewDiagramController(diagramService service.IDiagramService) IDiagramController {
	return &diagramController{
		diagramService: diagramService,
	}
}

func (c *diagramController) RegisterRoutes(r fiber.Router) {
	r.Post("/render_mermaid", c.RenderPost)
	r.Get("/render_mermaid", c.RenderGet)
}

func (c *diagramController) RenderPost(ctx *fiber.Ctx) error {
	var req dto.RenderMermaidRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}
	return c.render(ctx, &req)
}

func (c *diagramController) RenderGet(ctx *fiber.Ctx) error {
	var req dto.RenderMermaidRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid query parameters", err)
	}
	return c.render(ctx, &req)
}

func (c *diagramController) render(ctx *fiber.Ctx, req *dto.RenderMermaidRequest) error {
	svg, err := c.diagramService.RenderMermaid(ctx.UserContext(), req.Code, req.Theme)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "image/svg+xml")
	return ctx.SendString(svg)
}
