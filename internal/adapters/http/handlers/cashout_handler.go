package handlers

import (
	"errors"

	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
	"github.com/dataflexghana/dataflexcomplete/internal/core/services"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/pagination"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CashoutHandler handles commission cashout endpoints
type CashoutHandler struct {
	cashoutService *services.CashoutService
}

// NewCashoutHandler creates a new cashout handler
func NewCashoutHandler(cashoutService *services.CashoutService) *CashoutHandler {
	return &CashoutHandler{cashoutService: cashoutService}
}

// Request submits a cashout request, debiting the agent's balance
func (h *CashoutHandler) Request(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.RequestCashoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	cashout, err := h.cashoutService.Request(c.Context(), agentID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonPositiveAmount):
			return response.BadRequest(c, "Cashout amount must be greater than zero")
		case errors.Is(err, domain.ErrInsufficientBalance):
			return response.BadRequest(c, "Cashout amount exceeds your commission balance")
		case errors.Is(err, services.ErrAgentNotFound), errors.Is(err, services.ErrNotAnAgent):
			return response.Forbidden(c, "Only agents can request cashouts")
		default:
			return response.InternalServerError(c, "Failed to request cashout")
		}
	}

	return response.Created(c, "Cashout requested", fiber.Map{"cashout": cashout})
}

// ListMine returns the agent's own cashout requests
func (h *CashoutHandler) ListMine(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	cashouts, total, err := h.cashoutService.ListByAgent(c.Context(), agentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load cashouts")
	}

	return response.Success(c, "Cashouts retrieved", fiber.Map{
		"cashouts":   cashouts,
		"pagination": pagination.GetMeta(params, total),
	})
}

// List returns all cashout requests for the admin panel
func (h *CashoutHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	cashouts, total, err := h.cashoutService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load cashouts")
	}

	return response.Success(c, "Cashouts retrieved", fiber.Map{
		"cashouts":   cashouts,
		"pagination": pagination.GetMeta(params, total),
	})
}

// UpdateStatus applies an admin cashout status change
func (h *CashoutHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid cashout id")
	}

	var input services.UpdateCashoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	cashout, err := h.cashoutService.UpdateStatus(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCashoutNotFound):
			return response.NotFound(c, "Cashout request not found")
		case errors.Is(err, services.ErrMissingTransactionReference):
			return response.BadRequest(c, "A transaction reference is required to mark a cashout as paid")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Cashout cannot move to that status")
		default:
			return response.InternalServerError(c, "Failed to update cashout")
		}
	}

	return response.Success(c, "Cashout updated", fiber.Map{"cashout": cashout})
}
