package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// Gig order service errors
var (
	ErrGigOrderNotFound = errors.New("gig order not found")
	ErrGigNotFound      = errors.New("gig not found")
	ErrGigInactive      = errors.New("gig is not available")
)

// GigOrderService handles gig order business logic
type GigOrderService struct {
	gigOrderRepo repositories.GigOrderRepository
	gigRepo      repositories.GigRepository
	userRepo     repositories.UserRepository
	now          func() time.Time
}

// NewGigOrderService creates a new gig order service
func NewGigOrderService(
	gigOrderRepo repositories.GigOrderRepository,
	gigRepo repositories.GigRepository,
	userRepo repositories.UserRepository,
) *GigOrderService {
	return &GigOrderService{
		gigOrderRepo: gigOrderRepo,
		gigRepo:      gigRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// CreateGigOrderInput represents gig order creation input
type CreateGigOrderInput struct {
	GigID         uint   `json:"gigId" validate:"required"`
	ClientName    string `json:"clientName" validate:"required"`
	ClientContact string `json:"clientContact" validate:"required"`
	Requirements  string `json:"requirements"`
	AgentNotes    string `json:"agentNotes"`
}

// Create places a gig order for an agent. Requires an active account
// and a current subscription, checked server-side.
func (s *GigOrderService) Create(ctx context.Context, agentID uint, input *CreateGigOrderInput) (*models.GigOrder, error) {
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

	gig, err := s.gigRepo.GetByID(ctx, input.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	if !gig.IsActive {
		return nil, ErrGigInactive
	}

	order := &models.GigOrder{
		AgentID:       agentID,
		GigID:         gig.ID,
		GigName:       gig.Name, // snapshot
		OrderDate:     s.now(),
		Status:        string(domain.GigOrderPendingPayment),
		PricePaid:     gig.Price, // snapshot
		ClientName:    strings.TrimSpace(input.ClientName),
		ClientContact: strings.TrimSpace(input.ClientContact),
		Requirements:  input.Requirements,
		AgentNotes:    input.AgentNotes,
	}

	if err := s.gigOrderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("✅ Gig order #%d placed by agent %d: %s", order.ID, agentID, gig.Name)
	return order, nil
}

// ListByAgent lists an agent's own gig orders
func (s *GigOrderService) ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.GigOrder, int64, error) {
	return s.gigOrderRepo.ListByAgent(ctx, agentID, offset, limit)
}

// List lists all gig orders for the admin panel
func (s *GigOrderService) List(ctx context.Context, status string, offset, limit int) ([]*models.GigOrder, int64, error) {
	return s.gigOrderRepo.List(ctx, status, offset, limit)
}

// UpdateGigOrderInput represents an admin gig order status update
type UpdateGigOrderInput struct {
	Status           string `json:"status" validate:"required"`
	AdminNotes       string `json:"adminNotes"`
	PaymentReference string `json:"paymentReference"`
}

// UpdateStatus applies an admin status change against the explicit gig
// order graph. The fixed gig commission is credited only on the
// transition into completed; re-saving an already-completed order never
// double-credits.
func (s *GigOrderService) UpdateStatus(ctx context.Context, id uint, input *UpdateGigOrderInput) (*models.GigOrder, error) {
	order, err := s.gigOrderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigOrderNotFound
		}
		return nil, err
	}

	newStatus := domain.GigOrderStatus(input.Status)
	current := domain.GigOrderStatus(order.Status)

	completing := newStatus == domain.GigOrderCompleted && current != domain.GigOrderCompleted

	if newStatus != current {
		if !domain.CanTransitionGigOrder(current, newStatus) {
			return nil, domain.ErrInvalidTransition
		}
		order.Status = string(newStatus)
		if newStatus == domain.GigOrderCancelled {
			processed := s.now()
			order.ProcessedDate = &processed
		}
	}
	if input.AdminNotes != "" {
		order.AdminNotes = input.AdminNotes
	}
	if input.PaymentReference != "" {
		order.PaymentReference = input.PaymentReference
	}

	if !completing {
		if err := s.gigOrderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
		return order, nil
	}

	// Completion: capture the fixed commission from the gig catalog
	gig, err := s.gigRepo.GetByID(ctx, order.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}

	commission := gig.Commission.Round(2)
	processed := s.now()
	order.AgentCommissionEarned = &commission
	order.ProcessedDate = &processed

	if err := s.gigOrderRepo.UpdateWithCommission(ctx, order, commission); err != nil {
		return nil, err
	}

	log.Printf("✅ Gig order #%d completed: commission %s credited to agent %d",
		order.ID, commission.StringFixed(2), order.AgentID)
	return order, nil
}
