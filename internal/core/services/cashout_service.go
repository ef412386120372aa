package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// Cashout service errors
var (
	ErrCashoutNotFound             = errors.New("cashout request not found")
	ErrMissingTransactionReference = errors.New("transaction reference is required to mark a cashout as paid")
)

// CashoutService handles commission cashout requests
type CashoutService struct {
	cashoutRepo repositories.CashoutRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewCashoutService creates a new cashout service
func NewCashoutService(cashoutRepo repositories.CashoutRepository, userRepo repositories.UserRepository) *CashoutService {
	return &CashoutService{
		cashoutRepo: cashoutRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// RequestCashoutInput represents a cashout request from an agent
type RequestCashoutInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// Request debits the agent's balance and records a pending cashout in
// one transaction. The debit is guarded at the storage layer, so a
// concurrent request cannot overdraw the balance.
func (s *CashoutService) Request(ctx context.Context, agentID uint, input *RequestCashoutInput) (*models.CashoutRequest, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrNonPositiveAmount
	}

	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if !agent.IsAgent() {
		return nil, ErrNotAnAgent
	}
	if input.Amount.GreaterThan(agent.CommissionBalance) {
		return nil, domain.ErrInsufficientBalance
	}

	cashout := &models.CashoutRequest{
		AgentID:       agentID,
		Amount:        input.Amount.Round(2),
		Status:        string(domain.CashoutPending),
		RequestedDate: s.now(),
	}

	if err := s.cashoutRepo.CreateWithDebit(ctx, cashout); err != nil {
		return nil, err
	}

	log.Printf("✅ Cashout #%d requested: agent %d, amount %s", cashout.ID, agentID, cashout.Amount.StringFixed(2))
	return cashout, nil
}

// ListByAgent lists an agent's own cashout requests
func (s *CashoutService) ListByAgent(ctx context.Context, agentID uint, offset, limit int) ([]*models.CashoutRequest, int64, error) {
	return s.cashoutRepo.ListByAgent(ctx, agentID, offset, limit)
}

// List lists all cashout requests for the admin panel
func (s *CashoutService) List(ctx context.Context, status string, offset, limit int) ([]*models.CashoutRequest, int64, error) {
	return s.cashoutRepo.List(ctx, status, offset, limit)
}

// UpdateCashoutInput represents an admin cashout status update
type UpdateCashoutInput struct {
	Status               string `json:"status" validate:"required"`
	AdminNotes           string `json:"adminNotes"`
	TransactionReference string `json:"transactionReference"`
}

// UpdateStatus applies an admin status change against the cashout
// graph. Marking paid requires a transaction reference and stamps the
// processed date. Approval has no balance effect; the transition into
// rejected refunds the debited amount exactly once.
func (s *CashoutService) UpdateStatus(ctx context.Context, id uint, input *UpdateCashoutInput) (*models.CashoutRequest, error) {
	cashout, err := s.cashoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCashoutNotFound
		}
		return nil, err
	}

	newStatus := domain.CashoutStatus(input.Status)
	current := domain.CashoutStatus(cashout.Status)

	rejecting := newStatus == domain.CashoutRejected && current != domain.CashoutRejected

	if newStatus != current {
		if !domain.CanTransitionCashout(current, newStatus) {
			return nil, domain.ErrInvalidTransition
		}
		if newStatus == domain.CashoutPaid {
			if strings.TrimSpace(input.TransactionReference) == "" {
				return nil, ErrMissingTransactionReference
			}
			processed := s.now()
			cashout.ProcessedDate = &processed
		}
		cashout.Status = string(newStatus)
	}
	if input.AdminNotes != "" {
		cashout.AdminNotes = input.AdminNotes
	}
	if input.TransactionReference != "" {
		cashout.TransactionReference = input.TransactionReference
	}

	if rejecting {
		if err := s.cashoutRepo.UpdateWithRefund(ctx, cashout); err != nil {
			return nil, err
		}
		log.Printf("✅ Cashout #%d rejected: %s refunded to agent %d", cashout.ID, cashout.Amount.StringFixed(2), cashout.AgentID)
		return cashout, nil
	}

	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		return nil, err
	}
	return cashout, nil
}
