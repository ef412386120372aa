package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new global message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Publish deactivates every other message and inserts the new one as
// active, atomically. At most one message is active system-wide.
func (r *messageRepository) Publish(ctx context.Context, msg *models.GlobalMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GlobalMessage{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		msg.IsActive = true
		return tx.Create(msg).Error
	})
}

// GetActive gets the currently active global message
func (r *messageRepository) GetActive(ctx context.Context) (*models.GlobalMessage, error) {
	var msg models.GlobalMessage
	err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at DESC").First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List lists message history, newest first
func (r *messageRepository) List(ctx context.Context, offset, limit int) ([]*models.GlobalMessage, int64, error) {
	var msgs []*models.GlobalMessage
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.GlobalMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}
