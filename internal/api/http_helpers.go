package api

import (
	"errors"

	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError translates service-layer errors into HTTP responses.
// Validation errors keep their field map so the client can annotate inputs.
func respondServiceError(c *fiber.Ctx, err error) error {
	if validation, ok := services.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrJobNotFound):
		return apiError(c, fiber.StatusNotFound, "job not found")
	case errors.Is(err, services.ErrBidNotFound):
		return apiError(c, fiber.StatusNotFound, "bid not found")
	case errors.Is(err, services.ErrPropertyNotFound):
		return apiError(c, fiber.StatusNotFound, "property not found")
	case errors.Is(err, services.ErrNotJobOwner):
		return apiError(c, fiber.StatusForbidden, "not the job owner")
	case errors.Is(err, services.ErrBidOwnJob):
		return apiError(c, fiber.StatusForbidden, "cannot bid on your own job")
	case errors.Is(err, services.ErrJobNotBiddable):
		return apiError(c, fiber.StatusConflict, "job is not accepting bids")
	case errors.Is(err, services.ErrBidNotPending):
		return apiError(c, fiber.StatusConflict, "bid is no longer pending")
	case errors.Is(err, services.ErrSituationUnknown):
		return apiError(c, fiber.StatusBadRequest, "unknown setup situation")
	case errors.Is(err, services.ErrUnknownWizardStep):
		return apiError(c, fiber.StatusBadRequest, "unknown wizard step")
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
