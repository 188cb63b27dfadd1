package api

import (
	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ValidateRequestStep is the forward-navigation gate of the request wizard.
// It responds with only the failing step's fields, so fixing a field clears
// exactly that error.
func (handler *Handler) ValidateRequestStep(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid step")
	}

	draft := services.RequestDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := services.ValidateRequestStep(step, draft); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SubmitRequest commits the completed wizard draft as one new request.
func (handler *Handler) SubmitRequest(c *fiber.Ctx) error {
	draft := services.RequestDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	request, err := handler.requestService.Submit(user.ID, draft)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}

// ListRequests returns the user's own requests with bids and engagement
// attached. Optional query params: status, sort.
func (handler *Handler) ListRequests(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	requests, err := handler.requestService.ListWithActivity(user.ID, c.Query("status"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	requests = services.SortRequests(requests, c.Query("sort"))
	return c.JSON(fiber.Map{"requests": requests})
}

// RequestDraftForEdit pre-populates the wizard shape from an existing record.
func (handler *Handler) RequestDraftForEdit(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	draft, err := handler.requestService.DraftFor(user.ID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"draft": draft})
}

// UpdateRequest replaces the editable fields of an existing request in
// place, preserving its status and bids.
func (handler *Handler) UpdateRequest(c *fiber.Ctx) error {
	draft := services.RequestDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	request, err := handler.requestService.Update(user.ID, c.Params("id"), draft)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"request": request})
}

func (handler *Handler) CancelRequest(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	if err := handler.requestService.Cancel(user.ID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// UpdateProperty saves the property edit form, replacing the editable
// fields of an existing property in place.
func (handler *Handler) UpdateProperty(c *fiber.Ctx) error {
	input := services.PropertyUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	property, err := handler.propertyService.Update(user.ID, c.Params("id"), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"property": property})
}

// ListProperties backs the property selector of the wizard and the
// dashboard's property card.
func (handler *Handler) ListProperties(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	properties, err := handler.repositories.Properties.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"properties": properties})
}
