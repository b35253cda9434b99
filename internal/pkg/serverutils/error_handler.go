package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sushi-ordering-be/pkg/rag"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// JSON envelopes. Domain sentinels map to meaningful statuses; anything
// unrecognized stays a 500 with a generic message so internals don't leak.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := fiber.StatusInternalServerError
		message := "internal server error"
		switch {
		case errors.Is(err, rag.ErrInvalidQuery):
			code = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, rag.ErrProviderUnavailable):
			code = fiber.StatusServiceUnavailable
			message = "the assistant is temporarily unavailable, please try again shortly"
		case errors.Is(err, rag.ErrIndexUnavailable):
			code = fiber.StatusServiceUnavailable
			message = "menu search is temporarily unavailable, please try again shortly"
		case errors.Is(err, rag.ErrToolExecution):
			code = fiber.StatusBadGateway
			message = "the assistant could not complete a menu lookup"
		case errors.Is(err, rag.ErrTurnBudgetExceeded):
			code = fiber.StatusServiceUnavailable
			message = "the assistant could not finish answering, please try a simpler question"
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
