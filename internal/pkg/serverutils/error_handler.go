package serverutils

import (
	"errors"

	"notedeck-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// JSON error envelope. Domain sentinels map to their HTTP status; anything
// unknown is a 500. Nothing crashes the process.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		switch {
		case errors.Is(err, entity.ErrNoteNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, entity.ErrConfirmationRequired):
			code = fiber.StatusPreconditionRequired
		case errors.Is(err, entity.ErrNoSelection):
			code = fiber.StatusConflict
		case errors.Is(err, entity.ErrStorageUnavailable):
			code = fiber.StatusServiceUnavailable
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
