package domain

import "testing"

func TestCanTransitionAgent(t *testing.T) {
	tests := []struct {
		from, to AgentStatus
		want     bool
	}{
		{AgentPending, AgentActive, true},
		{AgentPending, AgentBanned, true},
		{AgentActive, AgentBanned, true},
		{AgentBanned, AgentActive, true},
		{AgentActive, AgentPending, false},
		{AgentBanned, AgentPending, false},
	}

	for _, tt := range tests {
		if got := CanTransitionAgent(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionAgent(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPendingPayment, OrderProcessing, true},
		{OrderPendingPayment, OrderCompleted, true},
		{OrderPendingPayment, OrderFailed, true},
		{OrderPendingPayment, OrderCancelled, true},
		{OrderProcessing, OrderCompleted, true},
		{OrderProcessing, OrderFailed, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderPendingPayment, false},
		{OrderCompleted, OrderProcessing, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderFailed, OrderProcessing, false},
		{OrderCancelled, OrderPendingPayment, false},
		{OrderPendingPayment, "shipped", false},
	}

	for _, tt := range tests {
		if got := CanTransitionOrder(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionOrder(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionGigOrder(t *testing.T) {
	tests := []struct {
		from, to GigOrderStatus
		want     bool
	}{
		{GigOrderPendingPayment, GigOrderPendingRequirements, true},
		{GigOrderPendingPayment, GigOrderCancelled, true},
		{GigOrderPendingPayment, GigOrderInProgress, false},
		{GigOrderPendingPayment, GigOrderCompleted, false},
		{GigOrderPendingRequirements, GigOrderInProgress, true},
		{GigOrderPendingRequirements, GigOrderRequiresDiscussion, true},
		{GigOrderPendingRequirements, GigOrderCompleted, true},
		{GigOrderInProgress, GigOrderCompleted, true},
		{GigOrderInProgress, GigOrderRequiresDiscussion, true},
		{GigOrderRequiresDiscussion, GigOrderInProgress, true},
		{GigOrderRequiresDiscussion, GigOrderPendingRequirements, true},
		{GigOrderRequiresDiscussion, GigOrderCompleted, false},
		{GigOrderCompleted, GigOrderInProgress, false},
		{GigOrderCancelled, GigOrderInProgress, false},
	}

	for _, tt := range tests {
		if got := CanTransitionGigOrder(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionGigOrder(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionCashout(t *testing.T) {
	tests := []struct {
		from, to CashoutStatus
		want     bool
	}{
		{CashoutPending, CashoutApproved, true},
		{CashoutPending, CashoutRejected, true},
		{CashoutPending, CashoutPaid, false},
		{CashoutApproved, CashoutPaid, true},
		{CashoutApproved, CashoutRejected, true},
		{CashoutApproved, CashoutPending, false},
		{CashoutPaid, CashoutRejected, true},
		{CashoutPaid, CashoutApproved, false},
		{CashoutRejected, CashoutPending, false},
		{CashoutRejected, CashoutApproved, false},
		{CashoutRejected, CashoutPaid, false},
	}

	for _, tt := range tests {
		if got := CanTransitionCashout(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionCashout(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidSubscriptionStatus(t *testing.T) {
	for _, s := range []SubscriptionStatus{
		SubscriptionActive, SubscriptionExpired, SubscriptionPendingPayment, SubscriptionNone,
	} {
		if !ValidSubscriptionStatus(s) {
			t.Errorf("ValidSubscriptionStatus(%s) = false, want true", s)
		}
	}
	if ValidSubscriptionStatus("gold") {
		t.Error(`ValidSubscriptionStatus("gold") = true, want false`)
	}
}
