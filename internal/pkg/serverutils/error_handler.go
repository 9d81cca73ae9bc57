package serverutils

import (
	"errors"

	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned further down the chain into
// BaseResponse bodies.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ValidationErrorResponse("Invalid request", validationErr.Fields))
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := appErr.Kind.Status()
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  appErr.Kind.String(),
				"error": err.Error(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	log.Error("HTTP", "Unhandled error", map[string]interface{}{
		"path":  ctx.Path(),
		"error": err.Error(),
	})
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
