package controller

import (
	"bufio"
	"context"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/pkg/serverutils"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type questionController struct {
	interviewService service.IInterviewService
	logger           logger.ILogger
}

func NewQuestionController(interviewService service.IInterviewService, log logger.ILogger) IQuestionController {
	return &questionController{
		interviewService: interviewService,
		logger:           log,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	r.Post("/question", c.Ask)
}

func (c *questionController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !req.Stream && !ctx.QueryBool("stream") {
		res, err := c.interviewService.Ask(ctx.UserContext(), &req)
		if err != nil {
			return err
		}
		return ctx.JSON(res)
	}

	stream, err := c.interviewService.AskStream(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	// The body writer runs after this handler returns, when ctx is no longer
	// ours to touch.
	streamCtx := context.WithoutCancel(ctx.UserContext())
	sessionId := req.SessionId

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		events := eventWriter{w: w}
		_, err := stream.Run(streamCtx, events.Data)
		if err != nil {
			c.logger.Warn("QUESTION", "Answer stream ended with error", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
			_ = events.Error(err)
			return
		}
		_ = events.End()
	})
	return nil
}
