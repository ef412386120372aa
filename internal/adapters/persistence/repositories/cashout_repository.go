package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// cashoutRepository implements CashoutRepository interface
type cashoutRepository struct {
	db *gorm.DB
}

// NewCashoutRepository creates a new cashout repository
func NewCashoutRepository(db *gorm.DB) CashoutRepository {
	return &cashoutRepository{db: db}
}

// CreateWithDebit debits the agent's balance and inserts the request
// atomically. The WHERE guard on the balance serializes concurrent
// debits at the storage layer: a request that would overdraw affects
// zero rows and the transaction rolls back.
func (r *cashoutRepository) CreateWithDebit(ctx context.Context, req *models.CashoutRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND commission_balance >= ?", req.AgentID, req.Amount).
			Update("commission_balance", gorm.Expr("commission_balance - ?", req.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientBalance
		}
		return tx.Create(req).Error
	})
}

// GetByID gets a cashout request by ID
func (r *cashoutRepository) GetByID(ctx context.Context, id uint) (*models.CashoutRequest, error) {
	var req models.CashoutRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update updates a cashout request
func (r *cashoutRepository) Update(ctx context.Context, req *models.CashoutRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// UpdateWithRefund flips the request into rejected and credits the
// refund back to the agent atomically. The WHERE guard on the status
// serializes concurrent rejections: the loser of the race affects
// zero rows and never credits.
func (r *cashoutRepository) UpdateWithRefund(ctx context.Context, req *models.CashoutRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CashoutRequest{}).
			Where("id = ? AND status <> ?", req.ID, string(domain.CashoutRejected)).
			Updates(map[string]interface{}{
				"status":                req.Status,
				"admin_notes":           req.AdminNotes,
				"transaction_reference": req.TransactionReference,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already rejected and refunded by another admin.
			return nil
		}
		// A deleted agent leaves nothing to refund; the status change
		// still stands.
		return tx.Model(&models.User{}).Where("id = ?", req.AgentID).
			Update("commission_balance", gorm.Expr("commission_balance + ?", req.Amount)).Error
	})
}

// ListByAgent lists cashout requests belonging to an agent, newest first
func (r *cashoutRepository) ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.CashoutRequest, int64, error) {
	var reqs []*models.CashoutRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CashoutRequest{}).Where("agent_id = ?", agentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("requested_date DESC").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// List lists all cashout requests with optional status filter, newest first
func (r *cashoutRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.CashoutRequest, int64, error) {
	var reqs []*models.CashoutRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CashoutRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("requested_date DESC").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}
