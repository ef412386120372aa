package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// gigOrderRepository implements GigOrderRepository interface
type gigOrderRepository struct {
	db *gorm.DB
}

// NewGigOrderRepository creates a new gig order repository
func NewGigOrderRepository(db *gorm.DB) GigOrderRepository {
	return &gigOrderRepository{db: db}
}

// Create creates a new gig order
func (r *gigOrderRepository) Create(ctx context.Context, order *models.GigOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID gets a gig order by ID
func (r *gigOrderRepository) GetByID(ctx context.Context, id uint) (*models.GigOrder, error) {
	var order models.GigOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update updates a gig order
func (r *gigOrderRepository) Update(ctx context.Context, order *models.GigOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// UpdateWithCommission flips the order into completed and credits the
// commission to the agent atomically. The WHERE guard on the status
// serializes concurrent completions: the loser of the race affects
// zero rows and never credits.
func (r *gigOrderRepository) UpdateWithCommission(ctx context.Context, order *models.GigOrder, commission decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.GigOrder{}).
			Where("id = ? AND status <> ?", order.ID, string(domain.GigOrderCompleted)).
			Updates(map[string]interface{}{
				"status":                  order.Status,
				"admin_notes":             order.AdminNotes,
				"payment_reference":       order.PaymentReference,
				"agent_commission_earned": order.AgentCommissionEarned,
				"processed_date":          order.ProcessedDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already completed and credited by another admin.
			return nil
		}
		credit := tx.Model(&models.User{}).Where("id = ?", order.AgentID).
			Update("commission_balance", gorm.Expr("commission_balance + ?", commission))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByAgent lists gig orders belonging to an agent, newest first
func (r *gigOrderRepository) ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.GigOrder, int64, error) {
	var orders []*models.GigOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&models.GigOrder{}).Where("agent_id = ?", agentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// List lists all gig orders with optional status filter, newest first
func (r *gigOrderRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.GigOrder, int64, error) {
	var orders []*models.GigOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&models.GigOrder{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
