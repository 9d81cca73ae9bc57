package controller

import (
	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/serverutils"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEvaluationController interface {
	RegisterRoutes(r fiber.Router)
	Evaluate(ctx *fiber.Ctx) error
}

type evaluationController struct {
	evaluationService service.IEvaluationService
}

func NewEvaluationController(evaluationService service.IEvaluationService) IEvaluationController {
	return &evaluationController{
		evaluationService: evaluationService,
	}
}

func (c *evaluationController) RegisterRoutes(r fiber.Router) {
	r.Post("/evaluate", c.Evaluate)
}

func (c *evaluationController) Evaluate(ctx *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.evaluationService.Evaluate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
