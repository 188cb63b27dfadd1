package api

import (
	"strconv"
	"time"

	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Jobs is the marketplace feed: every biddable request across all
// customers, filtered and sorted by query params.
func (handler *Handler) Jobs(c *fiber.Ctx) error {
	handler.ensureDependencies()
	jobs, err := handler.marketplaceSvc.Jobs(jobFiltersFromQuery(c), time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	response := fiber.Map{"jobs": jobs}
	if len(jobs) == 0 {
		response["message"] = "no jobs available"
	}
	return c.JSON(response)
}

// JobByID is the job details view; fetching it counts a visit.
func (handler *Handler) JobByID(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()

	viewerID := uint(0)
	if user != nil {
		viewerID = user.ID
	}
	job, err := handler.marketplaceSvc.JobByID(c.Params("id"), viewerID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

// ToggleJobLike flips the viewer's like and reports the new state.
func (handler *Handler) ToggleJobLike(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	liked, err := handler.marketplaceSvc.ToggleLike(user.ID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

func jobFiltersFromQuery(c *fiber.Ctx) services.JobFilters {
	return services.JobFilters{
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		MinBudget: queryFloat(c, "minBudget"),
		MaxBudget: queryFloat(c, "maxBudget"),
		Query:     c.Query("q"),
		SortKey:   c.Query("sort"),
	}
}

func queryFloat(c *fiber.Ctx, name string) float64 {
	value, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
