package api

import (
	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

type situationInput struct {
	Situation string `json:"situation"`
}

// OnboardingSituation handles step 1 of the property wizard. Choosing
// "browse" skips the rest of the wizard for good.
func (handler *Handler) OnboardingSituation(c *fiber.Ctx) error {
	input := situationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	skipped, err := handler.onboardingSvc.SaveSituation(user.ID, input.Situation)
	if err != nil {
		return respondServiceError(c, err)
	}

	if skipped {
		return c.JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// OnboardingProperty saves step 2, the property details, after the
// forward-navigation gate passes.
func (handler *Handler) OnboardingProperty(c *fiber.Ctx) error {
	draft := services.PropertyDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.onboardingSvc.SavePropertyStep(user.ID, draft); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// OnboardingComplete commits the wizard: a property is created and the
// account is marked set up.
func (handler *Handler) OnboardingComplete(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	property, err := handler.onboardingSvc.Complete(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":       true,
		"property": property,
		"redirect": "/dashboard",
	})
}

// OnboardingSkip finishes the wizard without creating a property. It is
// terminal: the wizard will not be shown again.
func (handler *Handler) OnboardingSkip(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.onboardingSvc.Skip(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
}
