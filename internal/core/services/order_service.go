package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// Order service errors
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrBundleNotFound = errors.New("data bundle not found")
	ErrBundleInactive = errors.New("data bundle is not available")
	ErrAgentNotActive = errors.New("agent account is not active")
	ErrUnknownStatus  = errors.New("unknown status")
)

// OrderService handles data bundle order business logic
type OrderService struct {
	orderRepo    repositories.OrderRepository
	bundleRepo   repositories.BundleRepository
	userRepo     repositories.UserRepository
	settingsRepo repositories.SettingsRepository
	now          func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repositories.OrderRepository,
	bundleRepo repositories.BundleRepository,
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		bundleRepo:   bundleRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Create places a bundle order for an agent. The subscription check
// happens here, server-side, at every order entry point: a disabled
// button in the UI is not a security boundary. The bundle commission
// (price x platform rate, rounded to 2dp) is credited at creation and
// snapshotted on the order, so later rate changes never touch it.
func (s *OrderService) Create(ctx context.Context, agentID uint, bundleID uint) (*models.Order, error) {
	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if !agent.IsAgent() || agent.Status != string(domain.AgentActive) {
		return nil, ErrAgentNotActive
	}
	if !agent.SubscriptionCurrent(s.now()) {
		return nil, domain.ErrSubscriptionInactive
	}

	bundle, err := s.bundleRepo.GetByID(ctx, bundleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, err
	}
	if !bundle.IsActive {
		return nil, ErrBundleInactive
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	commission := CommissionFor(bundle.Price, settings.DataBundleCommissionRate)

	order := &models.Order{
		AgentID:          agentID,
		BundleID:         bundle.ID,
		BundleName:       bundle.Name, // snapshot
		OrderDate:        s.now(),
		Status:           string(domain.OrderPendingPayment),
		PricePaid:        bundle.Price, // snapshot
		CommissionEarned: commission,
	}

	if err := s.orderRepo.CreateWithCommission(ctx, order, commission); err != nil {
		return nil, err
	}

	log.Printf("✅ Order #%d placed by agent %d: %s (commission %s)",
		order.ID, agentID, bundle.Name, commission.StringFixed(2))
	return order, nil
}

// ListByAgent lists an agent's own orders
func (s *OrderService) ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.Order, int64, error) {
	return s.orderRepo.ListByAgent(ctx, agentID, offset, limit)
}

// List lists all orders for the admin panel
func (s *OrderService) List(ctx context.Context, status string, offset, limit int) ([]*models.Order, int64, error) {
	return s.orderRepo.List(ctx, status, offset, limit)
}

// UpdateStatusInput represents an admin order status update
type UpdateStatusInput struct {
	Status           string `json:"status" validate:"required"`
	PaymentReference string `json:"paymentReference"`
}

// UpdateStatus applies an admin status change. Transitions are checked
// against the explicit order graph; setting the current status again is
// a no-op. No commission moves here: the bundle credit happened at
// creation.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	newStatus := domain.OrderStatus(input.Status)
	current := domain.OrderStatus(order.Status)

	if newStatus != current {
		if !domain.CanTransitionOrder(current, newStatus) {
			return nil, domain.ErrInvalidTransition
		}
		order.Status = string(newStatus)
	}
	if input.PaymentReference != "" {
		order.PaymentReference = input.PaymentReference
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CommissionFor computes the commission a bundle sale earns at the
// given platform rate, rounded to 2 decimal places
func CommissionFor(price, rate decimal.Decimal) decimal.Decimal {
	return price.Mul(rate).Round(2)
}
