package api

import (
	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type deleteAccountInput struct {
	Password string `json:"password"`
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	input := services.ProfileUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	updated, err := handler.settingsService.UpdateProfile(user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": updated})
}

func (handler *Handler) AppSettings(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	settings, err := handler.settingsService.AppSettings(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (handler *Handler) SaveAppSettings(c *fiber.Ctx) error {
	input := services.AppSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	settings, err := handler.settingsService.SaveAppSettings(user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// RestartOnboarding re-arms the role's wizard from the settings page.
func (handler *Handler) RestartOnboarding(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.settingsService.RestartOnboarding(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "redirect": onboardingPathFor(user)})
}

// DeleteAccount removes the account and everything owned by it after a
// password re-check. The session cookie is cleared on success.
func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	input := deleteAccountInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.settingsService.DeleteAccount(user.ID, input.Password); err != nil {
		return respondServiceError(c, err)
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true, "redirect": "/login"})
}
