package handlers

import (
	"errors"
	"strconv"

	"github.com/dataflexghana/dataflexcomplete/internal/core/services"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the logged-in user's own account endpoints
type ProfileHandler struct {
	agentService   *services.AgentService
	authService    *services.AuthService
	messageService *services.MessageService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	agentService *services.AgentService,
	authService *services.AuthService,
	messageService *services.MessageService,
) *ProfileHandler {
	return &ProfileHandler{
		agentService:   agentService,
		authService:    authService,
		messageService: messageService,
	}
}

// GetProfile returns the logged-in user's account
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "Profile retrieved", fiber.Map{"user": user.ToResponse()})
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword changes the logged-in user's password
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	err := h.agentService.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, services.ErrPasswordTooShort):
			return response.BadRequest(c, "Password must be at least 6 characters")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// GetSubscription returns the agent's subscription state
func (h *ProfileHandler) GetSubscription(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Subscription retrieved", fiber.Map{
		"subscriptionStatus":     user.SubscriptionStatus,
		"subscriptionExpiryDate": user.SubscriptionExpiryDate,
	})
}

// ConfirmSubscriptionPayment activates the agent's subscription after
// an out-of-band payment
func (h *ProfileHandler) ConfirmSubscriptionPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.agentService.ConfirmSubscriptionPayment(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound):
			return response.NotFound(c, "Agent not found")
		case errors.Is(err, services.ErrNotAnAgent):
			return response.Forbidden(c, "Only agents can hold subscriptions")
		default:
			return response.InternalServerError(c, "Failed to confirm payment")
		}
	}

	return response.Success(c, "Subscription activated", fiber.Map{
		"user": user.ToResponse(),
	})
}

// GetActiveMessage returns the active broadcast message, if the user
// has not dismissed it
func (h *ProfileHandler) GetActiveMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	msg, err := h.messageService.GetActiveFor(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to load message")
	}

	return response.Success(c, "Active message retrieved", fiber.Map{
		"message": msg,
	})
}

// DismissMessageRequest represents a message dismissal
type DismissMessageRequest struct {
	MessageID uint `json:"messageId" validate:"required"`
}

// DismissMessage hides the broadcast message for this user
func (h *ProfileHandler) DismissMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req DismissMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	if err := h.agentService.DismissMessage(c.Context(), userID, req.MessageID); err != nil {
		return response.InternalServerError(c, "Failed to dismiss message")
	}

	return response.Success(c, "Message dismissed", nil)
}

// parseIDParam parses a numeric :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
