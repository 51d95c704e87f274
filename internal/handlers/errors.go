package handlers

import (
	"errors"

	"catalog/internal/catalogerr"
	"catalog/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind catalogerr.Kind) int {
	switch kind {
	case catalogerr.KindNotFound:
		return fiber.StatusNotFound
	case catalogerr.KindConflict:
		return fiber.StatusConflict
	case catalogerr.KindFormat, catalogerr.KindConstraint, catalogerr.KindDomain:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err using the catalog error taxonomy. Field
// violations are listed individually.
func respondError(c *fiber.Ctx, message string, err error) error {
	kind := catalogerr.KindOf(err)
	status := statusFor(kind)

	body := fiber.Map{
		"message": message,
		"error":   err.Error(),
	}
	if kind != "" {
		body["kind"] = kind
	}
	if fields := fieldErrors(err); len(fields) > 0 {
		body["errors"] = fields
	}

	if status == fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(message)
	} else {
		logger.Debug().Err(err).Str("kind", string(kind)).Str("path", c.Path()).Msg(message)
	}
	return c.Status(status).JSON(body)
}

func fieldErrors(err error) catalogerr.FieldErrors {
	var many catalogerr.FieldErrors
	if errors.As(err, &many) {
		return many
	}
	var one *catalogerr.FieldError
	if errors.As(err, &one) {
		return catalogerr.FieldErrors{one}
	}
	return nil
}
