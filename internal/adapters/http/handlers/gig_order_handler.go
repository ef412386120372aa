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

// GigOrderHandler handles gig order endpoints
type GigOrderHandler struct {
	gigOrderService *services.GigOrderService
}

// NewGigOrderHandler creates a new gig order handler
func NewGigOrderHandler(gigOrderService *services.GigOrderService) *GigOrderHandler {
	return &GigOrderHandler{gigOrderService: gigOrderService}
}

// Create places a gig order for a client
func (h *GigOrderHandler) Create(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateGigOrderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	order, err := h.gigOrderService.Create(c.Context(), agentID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGigNotFound):
			return response.NotFound(c, "Gig not found")
		case errors.Is(err, services.ErrGigInactive):
			return response.BadRequest(c, "Gig is no longer available")
		case errors.Is(err, services.ErrAgentNotActive):
			return response.Forbidden(c, "Your account is not active")
		case errors.Is(err, domain.ErrSubscriptionInactive):
			return response.Forbidden(c, "An active subscription is required to place orders")
		default:
			return response.InternalServerError(c, "Failed to place gig order")
		}
	}

	return response.Created(c, "Gig order placed", fiber.Map{"gigOrder": order})
}

// ListMine returns the agent's own gig orders
func (h *GigOrderHandler) ListMine(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	orders, total, err := h.gigOrderService.ListByAgent(c.Context(), agentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load gig orders")
	}

	return response.Success(c, "Gig orders retrieved", fiber.Map{
		"gigOrders":  orders,
		"pagination": pagination.GetMeta(params, total),
	})
}

// List returns all gig orders for the admin panel
func (h *GigOrderHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	orders, total, err := h.gigOrderService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load gig orders")
	}

	return response.Success(c, "Gig orders retrieved", fiber.Map{
		"gigOrders":  orders,
		"pagination": pagination.GetMeta(params, total),
	})
}

// UpdateStatus applies an admin gig order status change
func (h *GigOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid gig order id")
	}

	var input services.UpdateGigOrderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	order, err := h.gigOrderService.UpdateStatus(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGigOrderNotFound):
			return response.NotFound(c, "Gig order not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Gig order cannot move to that status")
		default:
			return response.InternalServerError(c, "Failed to update gig order")
		}
	}

	return response.Success(c, "Gig order updated", fiber.Map{"gigOrder": order})
}
