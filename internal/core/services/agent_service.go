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
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/password"
)

// Agent service errors
var (
	ErrAgentNotFound       = errors.New("agent not found")
	ErrNotAnAgent          = errors.New("user is not an agent")
	ErrEmptyPassword       = errors.New("new password cannot be empty")
	ErrUnknownSubscription = errors.New("unknown subscription status")
)

// SubscriptionPeriod is how long one subscription payment lasts
const SubscriptionPeriod = 30 * 24 * time.Hour

// AgentService handles agent lifecycle and subscription business logic
type AgentService struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

// NewAgentService creates a new agent service
func NewAgentService(userRepo repositories.UserRepository) *AgentService {
	return &AgentService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// ListAgentsInput represents agent listing filters
type ListAgentsInput struct {
	Status string
	Search string
	Offset int
	Limit  int
}

// ListAgents lists agents with filters and pagination
func (s *AgentService) ListAgents(ctx context.Context, input *ListAgentsInput) ([]*models.User, int64, error) {
	return s.userRepo.ListAgents(ctx, input.Status, input.Search, input.Offset, input.Limit)
}

// GetAgent gets an agent by ID
func (s *AgentService) GetAgent(ctx context.Context, id uint) (*models.User, error) {
	agent, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if !agent.IsAgent() {
		return nil, ErrNotAnAgent
	}
	return agent, nil
}

// Approve moves an agent to active and marks them approved. Approving
// an already-active agent is a no-op; a banned agent is unbanned.
func (s *AgentService) Approve(ctx context.Context, id uint) (*models.User, error) {
	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.AgentStatus(agent.Status)
	if current == domain.AgentActive {
		return agent, nil // idempotent, no side effects
	}
	if !domain.CanTransitionAgent(current, domain.AgentActive) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.userRepo.UpdateStatus(ctx, id, string(domain.AgentActive), true); err != nil {
		return nil, err
	}
	agent.Status = string(domain.AgentActive)
	agent.IsApproved = true

	log.Printf("✅ Agent approved: %s", agent.Email)
	return agent, nil
}

// Ban moves an agent to banned and clears the approval flag. Banning
// an already-banned agent is a no-op.
func (s *AgentService) Ban(ctx context.Context, id uint) (*models.User, error) {
	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.AgentStatus(agent.Status)
	if current == domain.AgentBanned {
		return agent, nil // no-op
	}
	if !domain.CanTransitionAgent(current, domain.AgentBanned) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.userRepo.UpdateStatus(ctx, id, string(domain.AgentBanned), false); err != nil {
		return nil, err
	}
	agent.Status = string(domain.AgentBanned)
	agent.IsApproved = false

	log.Printf("⛔ Agent banned: %s", agent.Email)
	return agent, nil
}

// Delete hard deletes an agent. Historical orders and cashouts keep
// their agent_id and render as "Unknown Agent".
func (s *AgentService) Delete(ctx context.Context, id uint) error {
	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️ Agent deleted: %s", agent.Email)
	return nil
}

// ResetPassword replaces an agent's credential with an admin-supplied
// temporary password. Status is untouched.
func (s *AgentService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrEmptyPassword
	}
	if !password.Validate(newPassword) {
		return ErrPasswordTooShort
	}

	if _, err := s.GetAgent(ctx, id); err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, hashed)
}

// ChangePassword lets an authenticated user change their own password
func (s *AgentService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !password.Verify(currentPassword, user.Password) {
		return ErrInvalidCredentials
	}
	if !password.Validate(newPassword) {
		return ErrPasswordTooShort
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// UpdateSubscription applies an admin-chosen subscription status:
//   - active: expiry becomes now + 30 days
//   - expired: expiry is forced into the past so any expiry check
//     fails immediately
//   - pending_payment: expiry untouched
//   - none: expiry cleared
func (s *AgentService) UpdateSubscription(ctx context.Context, id uint, status domain.SubscriptionStatus) (*models.User, error) {
	if !domain.ValidSubscriptionStatus(status) {
		return nil, ErrUnknownSubscription
	}

	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	expiry := agent.SubscriptionExpiryDate
	switch status {
	case domain.SubscriptionActive:
		t := s.now().Add(SubscriptionPeriod)
		expiry = &t
	case domain.SubscriptionExpired:
		t := s.now().Add(-24 * time.Hour)
		expiry = &t
	case domain.SubscriptionNone:
		expiry = nil
	}

	if err := s.userRepo.UpdateSubscription(ctx, id, string(status), expiry); err != nil {
		return nil, err
	}
	agent.SubscriptionStatus = string(status)
	agent.SubscriptionExpiryDate = expiry

	log.Printf("✅ Subscription for %s set to %s", agent.Email, status)
	return agent, nil
}

// ConfirmSubscriptionPayment is the agent-initiated payment
// declaration: the subscription becomes active for 30 days. Payment
// itself is manual (mobile money), verified out of band by the admin.
func (s *AgentService) ConfirmSubscriptionPayment(ctx context.Context, agentID uint) (*models.User, error) {
	return s.UpdateSubscription(ctx, agentID, domain.SubscriptionActive)
}

// DismissMessage records that the agent dismissed the given global
// message so it is not shown to them again
func (s *AgentService) DismissMessage(ctx context.Context, agentID uint, messageID uint) error {
	if _, err := s.GetAgent(ctx, agentID); err != nil {
		return err
	}
	return s.userRepo.UpdateLastDismissedMessage(ctx, agentID, messageID)
}
