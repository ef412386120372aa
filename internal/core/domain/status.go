package domain

// Role represents a user role in the system
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// AgentStatus is the account state of an agent
type AgentStatus string

const (
	AgentPending AgentStatus = "pending"
	AgentActive  AgentStatus = "active"
	AgentBanned  AgentStatus = "banned"
)

// SubscriptionStatus is the agent's subscription state, independent of
// the account state
type SubscriptionStatus string

const (
	SubscriptionActive         SubscriptionStatus = "active"
	SubscriptionExpired        SubscriptionStatus = "expired"
	SubscriptionPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionNone           SubscriptionStatus = "none"
)

// ValidSubscriptionStatus reports whether s is a known subscription status
func ValidSubscriptionStatus(s SubscriptionStatus) bool {
	switch s {
	case SubscriptionActive, SubscriptionExpired, SubscriptionPendingPayment, SubscriptionNone:
		return true
	}
	return false
}

// OrderStatus is the state of a data bundle order
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderProcessing     OrderStatus = "processing"
	OrderCompleted      OrderStatus = "completed"
	OrderFailed         OrderStatus = "failed"
	OrderCancelled      OrderStatus = "cancelled"
)

// GigOrderStatus is the state of a gig order
type GigOrderStatus string

const (
	GigOrderPendingPayment      GigOrderStatus = "pending_payment"
	GigOrderPendingRequirements GigOrderStatus = "pending_requirements"
	GigOrderInProgress          GigOrderStatus = "in_progress"
	GigOrderRequiresDiscussion  GigOrderStatus = "requires_discussion"
	GigOrderCompleted           GigOrderStatus = "completed"
	GigOrderCancelled           GigOrderStatus = "cancelled"
)

// CashoutStatus is the state of a cashout request
type CashoutStatus string

const (
	CashoutPending  CashoutStatus = "pending"
	CashoutApproved CashoutStatus = "approved"
	CashoutPaid     CashoutStatus = "paid"
	CashoutRejected CashoutStatus = "rejected"
)

// Allowed transitions. Statuses absent from a table are terminal.
// Setting a status equal to the current one is treated by callers as a
// no-op, never as a transition.

var agentTransitions = map[AgentStatus][]AgentStatus{
	AgentPending: {AgentActive, AgentBanned},
	AgentActive:  {AgentBanned},
	AgentBanned:  {AgentActive}, // unban is modeled as re-approval
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment: {OrderProcessing, OrderCompleted, OrderFailed, OrderCancelled},
	OrderProcessing:     {OrderCompleted, OrderFailed, OrderCancelled},
}

var gigOrderTransitions = map[GigOrderStatus][]GigOrderStatus{
	GigOrderPendingPayment:      {GigOrderPendingRequirements, GigOrderCancelled},
	GigOrderPendingRequirements: {GigOrderInProgress, GigOrderRequiresDiscussion, GigOrderCompleted, GigOrderCancelled},
	GigOrderInProgress:          {GigOrderCompleted, GigOrderRequiresDiscussion, GigOrderCancelled},
	GigOrderRequiresDiscussion:  {GigOrderInProgress, GigOrderPendingRequirements, GigOrderCancelled},
}

var cashoutTransitions = map[CashoutStatus][]CashoutStatus{
	CashoutPending:  {CashoutApproved, CashoutRejected},
	CashoutApproved: {CashoutPaid, CashoutRejected},
	CashoutPaid:     {CashoutRejected},
}

// CanTransitionAgent reports whether an agent may move from one status
// to another
func CanTransitionAgent(from, to AgentStatus) bool {
	return contains(agentTransitions[from], to)
}

// CanTransitionOrder reports whether an order may move from one status
// to another
func CanTransitionOrder(from, to OrderStatus) bool {
	return contains(orderTransitions[from], to)
}

// CanTransitionGigOrder reports whether a gig order may move from one
// status to another
func CanTransitionGigOrder(from, to GigOrderStatus) bool {
	return contains(gigOrderTransitions[from], to)
}

// CanTransitionCashout reports whether a cashout request may move from
// one status to another
func CanTransitionCashout(from, to CashoutStatus) bool {
	return contains(cashoutTransitions[from], to)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
