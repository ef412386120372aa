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

// OrderHandler handles data bundle order endpoints
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest represents an agent bundle order
type CreateOrderRequest struct {
	BundleID uint `json:"bundleId" validate:"required"`
}

// Create places a bundle order. The commission is credited to the
// agent immediately at the current global rate.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	order, err := h.orderService.Create(c.Context(), agentID, req.BundleID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBundleNotFound):
			return response.NotFound(c, "Bundle not found")
		case errors.Is(err, services.ErrBundleInactive):
			return response.BadRequest(c, "Bundle is no longer available")
		case errors.Is(err, services.ErrAgentNotActive):
			return response.Forbidden(c, "Your account is not active")
		case errors.Is(err, domain.ErrSubscriptionInactive):
			return response.Forbidden(c, "An active subscription is required to place orders")
		default:
			return response.InternalServerError(c, "Failed to place order")
		}
	}

	return response.Created(c, "Order placed", fiber.Map{"order": order})
}

// ListMine returns the agent's own orders
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	agentID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	orders, total, err := h.orderService.ListByAgent(c.Context(), agentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load orders")
	}

	return response.Success(c, "Orders retrieved", fiber.Map{
		"orders":     orders,
		"pagination": pagination.GetMeta(params, total),
	})
}

// List returns all orders for the admin panel, filterable by status
func (h *OrderHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	orders, total, err := h.orderService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load orders")
	}

	return response.Success(c, "Orders retrieved", fiber.Map{
		"orders":     orders,
		"pagination": pagination.GetMeta(params, total),
	})
}

// UpdateStatus applies an admin order status change
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	order, err := h.orderService.UpdateStatus(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrUnknownStatus):
			return response.BadRequest(c, "Unknown order status")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Order cannot move to that status")
		default:
			return response.InternalServerError(c, "Failed to update order")
		}
	}

	return response.Success(c, "Order updated", fiber.Map{"order": order})
}
