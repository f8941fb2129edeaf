package serverutils

import (
	"errors"

	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// GenericFailureMessage is the only text an end user ever sees for an
// internal failure. No internal error detail leaks past this handler.
const GenericFailureMessage = "Something went wrong on our side. Please try again in a moment."

// NewErrorHandler builds the fiber error handler. Validation errors carry
// their field details back to the caller; everything else is logged and
// collapsed into the generic failure message.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErr *ValidationInputError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error()))
		}

		var generationErr *llm.GenerationError
		if errors.As(err, &generationErr) {
			log.Error("ErrorHandler", "Generation failure surfaced to user", map[string]interface{}{
				"error": generationErr.Error(),
				"path":  ctx.Path(),
			})
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(GenericFailureMessage))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Error("ErrorHandler", "Unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(GenericFailureMessage))
	}
}
