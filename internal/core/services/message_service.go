package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
)

// Message service errors
var (
	ErrEmptyMessage = errors.New("message text is required")
)

// MessageService handles the single-active global broadcast message
type MessageService struct {
	messageRepo repositories.MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo repositories.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Publish posts a new broadcast message on behalf of an admin. Every
// previous message is deactivated in the same transaction, so at most
// one is ever active.
func (s *MessageService) Publish(ctx context.Context, adminID uint, text string) (*models.GlobalMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.GlobalMessage{
		Message:  text,
		AdminID:  adminID,
		IsActive: true,
	}

	if err := s.messageRepo.Publish(ctx, msg); err != nil {
		return nil, err
	}

	log.Printf("✅ Global message #%d published", msg.ID)
	return msg, nil
}

// GetActiveFor returns the active message, or nil when there is none
// or the user has already dismissed it.
func (s *MessageService) GetActiveFor(ctx context.Context, user *models.User) (*models.GlobalMessage, error) {
	msg, err := s.messageRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user != nil && user.LastDismissedMessageID != nil && *user.LastDismissedMessageID == msg.ID {
		return nil, nil
	}
	return msg, nil
}

// List returns the broadcast history for the admin panel
func (s *MessageService) List(ctx context.Context, offset, limit int) ([]*models.GlobalMessage, int64, error) {
	return s.messageRepo.List(ctx, offset, limit)
}
