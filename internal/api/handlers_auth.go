package api

import (
	"errors"
	"time"

	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	UserType        string `json:"userType"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(services.RegistrationInput{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Role:            input.UserType,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":     user,
		"redirect": postLoginRedirectPath(&user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	throttleKey := clientThrottleKey(c)
	now := time.Now()
	if handler.loginThrottle.blocked(throttleKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginThrottle.recordFailure(throttleKey, now, loginAttemptWindow)
		}
		return respondServiceError(c, err)
	}
	handler.loginThrottle.clear(throttleKey)

	if user.MustChangePassword {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "password change required",
		})
	}

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"user":     user,
		"redirect": postLoginRedirectPath(&user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true, "redirect": "/login"})
}

// Me returns the session's account, the getCurrentUser of the client.
func (handler *Handler) Me(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": user})
}

// Route reports where the client should navigate for the current session
// state: dashboard when onboarding is done, the role's wizard otherwise.
func (handler *Handler) Route(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"redirect": postLoginRedirectPath(user)})
}
