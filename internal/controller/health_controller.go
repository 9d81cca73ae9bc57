package controller

import (
	"interview-assistant-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// HealthInfo is what /health reports. Sockets may be nil.
type HealthInfo struct {
	Version     string
	LLMProvider string
	LLMEnabled  bool
	STTProvider string
	Sockets     func() int
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	info HealthInfo
}

func NewHealthController(info HealthInfo) IHealthController {
	return &healthController{info: info}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	res := dto.HealthResponse{
		Status:  "ok",
		Version: c.info.Version,
		LLM: dto.LLMHealth{
			Provider: c.info.LLMProvider,
			Enabled:  c.info.LLMEnabled,
		},
		STT: dto.STTHealth{Provider: c.info.STTProvider},
	}
	if c.info.Sockets != nil {
		res.Sockets = c.info.Sockets()
	}
	return ctx.JSON(res)
}
