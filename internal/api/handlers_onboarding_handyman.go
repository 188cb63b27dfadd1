package api

import (
	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

// HandymanOnboardingStep validates and saves one step of the professional
// profile wizard. The step number comes from the path.
func (handler *Handler) HandymanOnboardingStep(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid step")
	}

	draft := services.HandymanProfileDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.profileSvc.SaveStep(user.ID, step, draft); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandymanOnboardingComplete re-validates every collecting step and commits
// the profile.
func (handler *Handler) HandymanOnboardingComplete(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	profile, err := handler.profileSvc.Complete(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":       true,
		"profile":  profile,
		"redirect": "/handyman/dashboard",
	})
}

func (handler *Handler) HandymanOnboardingSkip(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.profileSvc.Skip(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "redirect": "/handyman/dashboard"})
}

// HandymanProfile returns the committed profile for the profile page.
func (handler *Handler) HandymanProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	profile, found, err := handler.repositories.Profiles.FindByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}
	return c.JSON(fiber.Map{"profile": profile})
}
