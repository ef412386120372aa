package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface. Balance mutations
// are expressed as atomic increments/decrements at the storage layer so
// concurrent money-affecting operations cannot lose updates.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListAgents(ctx context.Context, status string, search string, offset, limit int) ([]*models.User, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string, isApproved bool) error
	UpdateSubscription(ctx context.Context, id uint, status string, expiry *time.Time) error
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	UpdateLastDismissedMessage(ctx context.Context, id uint, messageID uint) error
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BundleRepository defines data bundle catalog repository interface
type BundleRepository interface {
	Create(ctx context.Context, bundle *models.DataBundle) error
	GetByID(ctx context.Context, id uint) (*models.DataBundle, error)
	Update(ctx context.Context, bundle *models.DataBundle) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.DataBundle, error)
	Count(ctx context.Context) (int64, error)
}

// GigRepository defines gig catalog repository interface
type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id uint) (*models.Gig, error)
	Update(ctx context.Context, gig *models.Gig) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.Gig, error)
}

// OrderRepository defines bundle order repository interface
type OrderRepository interface {
	// CreateWithCommission inserts the order and credits the agent's
	// commission balance in a single transaction.
	CreateWithCommission(ctx context.Context, order *models.Order, commission decimal.Decimal) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.Order, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Order, int64, error)
}

// GigOrderRepository defines gig order repository interface
type GigOrderRepository interface {
	Create(ctx context.Context, order *models.GigOrder) error
	GetByID(ctx context.Context, id uint) (*models.GigOrder, error)
	Update(ctx context.Context, order *models.GigOrder) error
	// UpdateWithCommission saves the order and credits the agent's
	// commission balance in a single transaction (completion credit).
	UpdateWithCommission(ctx context.Context, order *models.GigOrder, commission decimal.Decimal) error
	ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.GigOrder, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.GigOrder, int64, error)
}

// CashoutRepository defines cashout request repository interface
type CashoutRepository interface {
	// CreateWithDebit debits the agent's balance and inserts the
	// request in a single transaction. The debit is guarded, so it
	// returns domain.ErrInsufficientBalance when the balance cannot
	// cover the amount.
	CreateWithDebit(ctx context.Context, req *models.CashoutRequest) error
	GetByID(ctx context.Context, id uint) (*models.CashoutRequest, error)
	Update(ctx context.Context, req *models.CashoutRequest) error
	// UpdateWithRefund saves the request and credits the refund back to
	// the agent in a single transaction (rejection refund).
	UpdateWithRefund(ctx context.Context, req *models.CashoutRequest) error
	ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.CashoutRequest, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.CashoutRequest, int64, error)
}

// MessageRepository defines global message repository interface
type MessageRepository interface {
	// Publish deactivates every other message and inserts the new one
	// as active, atomically.
	Publish(ctx context.Context, msg *models.GlobalMessage) error
	GetActive(ctx context.Context) (*models.GlobalMessage, error)
	List(ctx context.Context, offset, limit int) ([]*models.GlobalMessage, int64, error)
}

// SettingsRepository defines platform settings repository interface
type SettingsRepository interface {
	Get(ctx context.Context) (*models.PlatformSettings, error)
	Update(ctx context.Context, settings *models.PlatformSettings) error
}
