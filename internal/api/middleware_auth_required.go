package api

import (
	"github.com/fixbo/fixbo/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	c.Locals(contextUserKey, user)
	if !user.OnboardingDone() && !isOnboardingExemptPath(c.Path()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":    "onboarding required",
			"redirect": onboardingPathFor(user),
		})
	}
	return c.Next()
}

// CustomerOnly guards customer surfaces: posting requests, managing bids on
// own jobs, properties.
func (handler *Handler) CustomerOnly(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil || !user.IsCustomer() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "customer account required"})
	}
	return c.Next()
}

// HandymanOnly guards contractor surfaces: the marketplace, bidding, the
// contractor dashboard.
func (handler *Handler) HandymanOnly(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil || !user.IsHandyman() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "handyman account required"})
	}
	return c.Next()
}

// Onboarding endpoints, session introspection and logout stay reachable while
// the wizard is unfinished; everything else is gated until it completes.
func isOnboardingExemptPath(path string) bool {
	switch path {
	case "/api/auth/logout", "/api/auth/me", "/api/auth/route":
		return true
	}
	return hasPathPrefix(path, "/api/onboarding/") || hasPathPrefix(path, "/api/handyman/onboarding/")
}

func hasPathPrefix(path string, prefix string) bool {
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}

// onboardingPathFor mirrors the client's routing: each role has its own
// wizard entry point.
func onboardingPathFor(user *models.User) string {
	if user.IsHandyman() {
		return "/handyman/onboarding"
	}
	return "/onboarding"
}

// postLoginRedirectPath decides where a fresh session lands: the role's
// dashboard, or its wizard when setup is unfinished.
func postLoginRedirectPath(user *models.User) string {
	if !user.OnboardingDone() {
		return onboardingPathFor(user)
	}
	if user.IsHandyman() {
		return "/handyman/dashboard"
	}
	return "/dashboard"
}
