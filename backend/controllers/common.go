package controllers

import (
	"errors"

	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// serviceError translates the service error taxonomy into JSON responses.
// Anything outside the taxonomy is a persistence failure and maps to 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAttemptLimitExceeded):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		return utils.UnprocessableEntity(c, err.Error())
	default:
		return utils.InternalServerError(c, "Could not query database")
	}
}
