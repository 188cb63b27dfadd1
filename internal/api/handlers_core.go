package api

import (
	"github.com/fixbo/fixbo/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// CustomerDashboard backs the customer home page header: request counters
// plus the property list.
func (handler *Handler) CustomerDashboard(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()

	counters := make(map[string]int64, 4)
	for _, status := range []string{
		models.RequestStatusOpen,
		models.RequestStatusActive,
		models.RequestStatusPending,
		models.RequestStatusCompleted,
	} {
		count, err := handler.repositories.Requests.CountByUserAndStatus(user.ID, status)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		counters[status] = count
	}

	properties, err := handler.repositories.Properties.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	return c.JSON(fiber.Map{
		"requestCounts": counters,
		"properties":    properties,
	})
}
