package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ContractorStats backs the handyman dashboard header.
func (handler *Handler) ContractorStats(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	stats, err := handler.contractorService.Stats(user.ID, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// ContractorProjects lists the handyman's bids with the underlying jobs.
// Optional query param: status (bid status).
func (handler *Handler) ContractorProjects(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	projects, err := handler.contractorService.Projects(user.ID, c.Query("status"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// ContractorCalendar returns scheduled visits inside [start, end), both
// dates as YYYY-MM-DD. Defaults to the coming month.
func (handler *Handler) ContractorCalendar(c *fiber.Ctx) error {
	start, end, err := calendarRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range, expected YYYY-MM-DD")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	entries, err := handler.contractorService.Calendar(user.ID, start, end)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func calendarRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	if !end.After(start) {
		end = start.AddDate(0, 1, 0)
	}
	return start, end, nil
}
