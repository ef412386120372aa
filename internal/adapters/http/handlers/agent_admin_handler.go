package handlers

import (
	"errors"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
	"github.com/dataflexghana/dataflexcomplete/internal/core/services"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/pagination"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AgentAdminHandler handles admin agent management endpoints
type AgentAdminHandler struct {
	agentService *services.AgentService
}

// NewAgentAdminHandler creates a new agent admin handler
func NewAgentAdminHandler(agentService *services.AgentService) *AgentAdminHandler {
	return &AgentAdminHandler{agentService: agentService}
}

// List returns agents, filterable by status and searchable by name or
// email
func (h *AgentAdminHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	agents, total, err := h.agentService.ListAgents(c.Context(), &services.ListAgentsInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list agents")
	}

	items := make([]*models.UserResponse, 0, len(agents))
	for _, a := range agents {
		items = append(items, a.ToResponse())
	}

	return response.Success(c, "Agents retrieved", fiber.Map{
		"agents":     items,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Get returns one agent
func (h *AgentAdminHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	agent, err := h.agentService.GetAgent(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) || errors.Is(err, services.ErrNotAnAgent) {
			return response.NotFound(c, "Agent not found")
		}
		return response.InternalServerError(c, "Failed to load agent")
	}

	return response.Success(c, "Agent retrieved", fiber.Map{
		"agent": agent.ToResponse(),
	})
}

// Approve activates a pending or banned agent
func (h *AgentAdminHandler) Approve(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	agent, err := h.agentService.Approve(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound), errors.Is(err, services.ErrNotAnAgent):
			return response.NotFound(c, "Agent not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Agent cannot be approved from its current status")
		default:
			return response.InternalServerError(c, "Failed to approve agent")
		}
	}

	return response.Success(c, "Agent approved", fiber.Map{
		"agent": agent.ToResponse(),
	})
}

// Ban bans an agent
func (h *AgentAdminHandler) Ban(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	agent, err := h.agentService.Ban(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound), errors.Is(err, services.ErrNotAnAgent):
			return response.NotFound(c, "Agent not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Agent cannot be banned from its current status")
		default:
			return response.InternalServerError(c, "Failed to ban agent")
		}
	}

	return response.Success(c, "Agent banned", fiber.Map{
		"agent": agent.ToResponse(),
	})
}

// Delete permanently removes an agent account. Order and cashout
// history keeps its rows; displays fall back to a placeholder name.
func (h *AgentAdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	if err := h.agentService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrAgentNotFound) || errors.Is(err, services.ErrNotAnAgent) {
			return response.NotFound(c, "Agent not found")
		}
		return response.InternalServerError(c, "Failed to delete agent")
	}

	return response.Success(c, "Agent deleted", nil)
}

// ResetPasswordRequest represents an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ResetPassword sets a new password for an agent
func (h *AgentAdminHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	if err := h.agentService.ResetPassword(c.Context(), id, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound), errors.Is(err, services.ErrNotAnAgent):
			return response.NotFound(c, "Agent not found")
		case errors.Is(err, services.ErrEmptyPassword), errors.Is(err, services.ErrPasswordTooShort):
			return response.BadRequest(c, "Password must be at least 6 characters")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset successfully", nil)
}

// UpdateSubscriptionRequest represents an admin subscription change
type UpdateSubscriptionRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateSubscription sets an agent's subscription status. Activation
// pushes the expiry 30 days out; expiry backdates it.
func (h *AgentAdminHandler) UpdateSubscription(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	var req UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	agent, err := h.agentService.UpdateSubscription(c.Context(), id, domain.SubscriptionStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound), errors.Is(err, services.ErrNotAnAgent):
			return response.NotFound(c, "Agent not found")
		case errors.Is(err, services.ErrUnknownSubscription):
			return response.BadRequest(c, "Unknown subscription status")
		default:
			return response.InternalServerError(c, "Failed to update subscription")
		}
	}

	return response.Success(c, "Subscription updated", fiber.Map{
		"agent": agent.ToResponse(),
	})
}
