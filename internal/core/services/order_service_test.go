package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

type orderFixture struct {
	svc          *OrderService
	userRepo     *fakeUserRepo
	bundleRepo   *fakeBundleRepo
	settingsRepo *fakeSettingsRepo
	agentID      uint
	bundleID     uint
}

func newOrderFixture(t *testing.T, rate decimal.Decimal) *orderFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	expiry := time.Now().Add(10 * 24 * time.Hour)
	agent := &models.User{
		Name:                   "Efua Owusu",
		Email:                  "efua@example.com",
		Role:                   string(domain.RoleAgent),
		Status:                 string(domain.AgentActive),
		SubscriptionStatus:     string(domain.SubscriptionActive),
		SubscriptionExpiryDate: &expiry,
	}
	userRepo.Create(context.Background(), agent)

	bundleRepo := newFakeBundleRepo()
	bundle := &models.DataBundle{
		Name:               "MTN 5GB",
		DataAmount:         "5GB",
		Price:              decimal.NewFromFloat(28.00),
		ValidityPeriodDays: 90,
		IsActive:           true,
	}
	bundleRepo.Create(context.Background(), bundle)

	settingsRepo := newFakeSettingsRepo(rate)
	svc := NewOrderService(newFakeOrderRepo(userRepo), bundleRepo, userRepo, settingsRepo)

	return &orderFixture{
		svc:          svc,
		userRepo:     userRepo,
		bundleRepo:   bundleRepo,
		settingsRepo: settingsRepo,
		agentID:      agent.ID,
		bundleID:     bundle.ID,
	}
}

func TestCommissionFor(t *testing.T) {
	tests := []struct {
		name     string
		price    decimal.Decimal
		rate     decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "default rate",
			price:    decimal.NewFromFloat(28.00),
			rate:     decimal.NewFromFloat(0.05),
			expected: decimal.NewFromFloat(1.40),
		},
		{
			name:  "rounding half up",
			price: decimal.NewFromFloat(10.49),
			rate:  decimal.NewFromFloat(0.05),
			// 10.49 * 0.05 = 0.5245 -> 0.52
			expected: decimal.NewFromFloat(0.52),
		},
		{
			name:  "rounding up",
			price: decimal.NewFromFloat(10.51),
			rate:  decimal.NewFromFloat(0.05),
			// 10.51 * 0.05 = 0.5255 -> 0.53
			expected: decimal.NewFromFloat(0.53),
		},
		{
			name:     "zero rate",
			price:    decimal.NewFromFloat(28.00),
			rate:     decimal.Zero,
			expected: decimal.Zero,
		},
		{
			name:     "full rate",
			price:    decimal.NewFromFloat(28.00),
			rate:     decimal.NewFromInt(1),
			expected: decimal.NewFromFloat(28.00),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CommissionFor(tt.price, tt.rate)
			if !result.Equal(tt.expected) {
				t.Errorf("CommissionFor(%v, %v) = %v, want %v", tt.price, tt.rate, result, tt.expected)
			}
		})
	}
}

func TestOrderCreateCreditsCommission(t *testing.T) {
	f := newOrderFixture(t, decimal.NewFromFloat(0.05))

	order, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if order.Status != string(domain.OrderPendingPayment) {
		t.Errorf("Status = %q, want pending_payment", order.Status)
	}
	if order.BundleName != "MTN 5GB" {
		t.Errorf("BundleName = %q, want MTN 5GB", order.BundleName)
	}
	if !order.PricePaid.Equal(decimal.NewFromFloat(28.00)) {
		t.Errorf("PricePaid = %v, want 28.00", order.PricePaid)
	}
	if !order.CommissionEarned.Equal(decimal.NewFromFloat(1.40)) {
		t.Errorf("CommissionEarned = %v, want 1.40", order.CommissionEarned)
	}
	// The credit lands at creation, not at completion
	if got := balanceOf(t, f.userRepo, f.agentID); !got.Equal(decimal.NewFromFloat(1.40)) {
		t.Errorf("balance = %v, want 1.40", got)
	}
}

func TestOrderRateChangeIsNotRetroactive(t *testing.T) {
	f := newOrderFixture(t, decimal.NewFromFloat(0.05))

	first, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Raise the rate, then order again
	settings, _ := f.settingsRepo.Get(context.Background())
	settings.DataBundleCommissionRate = decimal.NewFromFloat(0.10)
	f.settingsRepo.Update(context.Background(), settings)

	second, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !first.CommissionEarned.Equal(decimal.NewFromFloat(1.40)) {
		t.Errorf("first CommissionEarned = %v, want 1.40", first.CommissionEarned)
	}
	if !second.CommissionEarned.Equal(decimal.NewFromFloat(2.80)) {
		t.Errorf("second CommissionEarned = %v, want 2.80", second.CommissionEarned)
	}
	if got := balanceOf(t, f.userRepo, f.agentID); !got.Equal(decimal.NewFromFloat(4.20)) {
		t.Errorf("balance = %v, want 4.20", got)
	}
}

func TestOrderCreatePreconditions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *orderFixture)
		wantErr error
	}{
		{
			name: "pending agent",
			prepare: func(f *orderFixture) {
				f.userRepo.UpdateStatus(context.Background(), f.agentID, string(domain.AgentPending), false)
			},
			wantErr: ErrAgentNotActive,
		},
		{
			name: "banned agent",
			prepare: func(f *orderFixture) {
				f.userRepo.UpdateStatus(context.Background(), f.agentID, string(domain.AgentBanned), false)
			},
			wantErr: ErrAgentNotActive,
		},
		{
			name: "no subscription",
			prepare: func(f *orderFixture) {
				f.userRepo.UpdateSubscription(context.Background(), f.agentID, string(domain.SubscriptionNone), nil)
			},
			wantErr: domain.ErrSubscriptionInactive,
		},
		{
			name: "expired subscription date",
			prepare: func(f *orderFixture) {
				past := time.Now().Add(-time.Hour)
				f.userRepo.UpdateSubscription(context.Background(), f.agentID, string(domain.SubscriptionActive), &past)
			},
			wantErr: domain.ErrSubscriptionInactive,
		},
		{
			name: "inactive bundle",
			prepare: func(f *orderFixture) {
				bundle, _ := f.bundleRepo.GetByID(context.Background(), f.bundleID)
				bundle.IsActive = false
				f.bundleRepo.Update(context.Background(), bundle)
			},
			wantErr: ErrBundleInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t, decimal.NewFromFloat(0.05))
			tt.prepare(f)

			_, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			// A refused order never credits
			if got := balanceOf(t, f.userRepo, f.agentID); !got.IsZero() {
				t.Errorf("balance = %v, want 0", got)
			}
		})
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture(t, decimal.NewFromFloat(0.05))
	order, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// pending_payment -> processing -> completed
	for _, status := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderCompleted} {
		if _, err := f.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
			Status: string(status),
		}); err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
	}

	// Completion of a bundle order never credits a second time
	if got := balanceOf(t, f.userRepo, f.agentID); !got.Equal(decimal.NewFromFloat(1.40)) {
		t.Errorf("balance after completion = %v, want 1.40", got)
	}

	// completed is terminal
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: string(domain.OrderProcessing),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("UpdateStatus(processing) from completed error = %v, want ErrInvalidTransition", err)
	}
}

func TestOrderSameStatusIsNoOp(t *testing.T) {
	f := newOrderFixture(t, decimal.NewFromFloat(0.05))
	order, err := f.svc.Create(context.Background(), f.agentID, f.bundleID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := f.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status:           string(domain.OrderPendingPayment),
		PaymentReference: "PAY-1",
	})
	if err != nil {
		t.Fatalf("UpdateStatus(same) error = %v", err)
	}
	if updated.Status != string(domain.OrderPendingPayment) {
		t.Errorf("Status = %q, want pending_payment", updated.Status)
	}
	if updated.PaymentReference != "PAY-1" {
		t.Errorf("PaymentReference = %q, want PAY-1", updated.PaymentReference)
	}
}
