package api

import (
	"time"

	"github.com/fixbo/fixbo/internal/services"
	"github.com/gofiber/fiber/v2"
)

type acceptBidInput struct {
	ScheduledDate string `json:"scheduledDate"`
}

// CreateBid places a handyman's bid on a job. The write is serialized per
// job, so concurrent bids never lose updates.
func (handler *Handler) CreateBid(c *fiber.Ctx) error {
	input := services.BidInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user := currentUser(c)
	handler.ensureDependencies()
	bid, err := handler.bidService.CreateBid(user.ID, c.Params("id"), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bid": bid})
}

// BidsForJob lists a job's bids. Both sides read the same list: the
// customer reviewing offers and the handyman checking competition.
func (handler *Handler) BidsForJob(c *fiber.Ctx) error {
	handler.ensureDependencies()
	bids, err := handler.bidService.BidsForJob(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bids": bids})
}

// AcceptBid is customer-only: it confirms one bid, rejects the other
// pending ones and moves the job to Pending.
func (handler *Handler) AcceptBid(c *fiber.Ctx) error {
	input := acceptBidInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	var scheduledDate *time.Time
	if input.ScheduledDate != "" {
		parsed, err := time.Parse("2006-01-02", input.ScheduledDate)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid scheduled date, expected YYYY-MM-DD")
		}
		scheduledDate = &parsed
	}

	user := currentUser(c)
	handler.ensureDependencies()
	bid, err := handler.bidService.Accept(user.ID, c.Params("bidId"), scheduledDate)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bid": bid})
}

func (handler *Handler) RejectBid(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	bid, err := handler.bidService.Reject(user.ID, c.Params("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bid": bid})
}

// WithdrawBid lets a handyman pull their own pending bid.
func (handler *Handler) WithdrawBid(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	bid, err := handler.bidService.Withdraw(user.ID, c.Params("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bid": bid})
}

// MyBids lists the handyman's own bids across all jobs.
func (handler *Handler) MyBids(c *fiber.Ctx) error {
	user := currentUser(c)
	handler.ensureDependencies()
	bids, err := handler.repositories.Bids.ListByContractor(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"bids": bids})
}
