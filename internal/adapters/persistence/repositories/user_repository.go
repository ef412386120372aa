package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete hard deletes a user. Historical orders keep their agent_id and
// are rendered as "Unknown Agent" in listings.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.User{}, id).Error
}

// ListAgents lists agents with optional status filter, search and pagination
func (r *userRepository) ListAgents(ctx context.Context, status string, search string, offset, limit int) ([]*models.User, int64, error) {
	var agents []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", string(domain.RoleAgent))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&agents).Error; err != nil {
		return nil, 0, err
	}

	return agents, total, nil
}

// UpdateStatus updates an agent's account status and approval flag
func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status string, isApproved bool) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"is_approved": isApproved,
		}).Error
}

// UpdateSubscription updates an agent's subscription status and expiry
func (r *userRepository) UpdateSubscription(ctx context.Context, id uint, status string, expiry *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_status":      status,
			"subscription_expiry_date": expiry,
		}).Error
}

// UpdatePassword replaces a user's stored credential
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("password", hashed).Error
}

// UpdateLastDismissedMessage records the last global message an agent dismissed
func (r *userRepository) UpdateLastDismissedMessage(ctx context.Context, id uint, messageID uint) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_dismissed_message_id", messageID).Error
}

// ExpireSubscriptions flips active subscriptions whose expiry has
// passed to expired. Returns the number of agents affected.
func (r *userRepository) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND subscription_status = ? AND subscription_expiry_date IS NOT NULL AND subscription_expiry_date < ?",
			string(domain.RoleAgent), string(domain.SubscriptionActive), now).
		Update("subscription_status", string(domain.SubscriptionExpired))
	return res.RowsAffected, res.Error
}
