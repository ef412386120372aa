package handlers

import (
	"errors"

	"github.com/dataflexghana/dataflexcomplete/internal/core/services"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/pagination"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PlatformHandler handles admin settings and broadcast messages
type PlatformHandler struct {
	settingsService *services.SettingsService
	messageService  *services.MessageService
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(settingsService *services.SettingsService, messageService *services.MessageService) *PlatformHandler {
	return &PlatformHandler{
		settingsService: settingsService,
		messageService:  messageService,
	}
}

// GetSettings returns the platform settings
func (h *PlatformHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}
	return response.Success(c, "Settings retrieved", fiber.Map{"settings": settings})
}

// UpdateSettings changes the global commission rate. The new rate only
// affects orders placed afterwards.
func (h *PlatformHandler) UpdateSettings(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	settings, err := h.settingsService.Update(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrRateOutOfRange) {
			return response.BadRequest(c, "Commission rate must be between 0 and 1")
		}
		return response.InternalServerError(c, "Failed to update settings")
	}

	return response.Success(c, "Settings updated", fiber.Map{"settings": settings})
}

// PublishMessageRequest represents a broadcast message publish
type PublishMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// PublishMessage posts a new broadcast message, deactivating previous
// ones
func (h *PlatformHandler) PublishMessage(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req PublishMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	msg, err := h.messageService.Publish(c.Context(), adminID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return response.BadRequest(c, "Message text is required")
		}
		return response.InternalServerError(c, "Failed to publish message")
	}

	return response.Created(c, "Message published", fiber.Map{"message": msg})
}

// ListMessages returns the broadcast history
func (h *PlatformHandler) ListMessages(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	messages, total, err := h.messageService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load messages")
	}

	return response.Success(c, "Messages retrieved", fiber.Map{
		"messages":   messages,
		"pagination": pagination.GetMeta(params, total),
	})
}
