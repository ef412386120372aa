package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService handles admin dashboard aggregates
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Agent statistics
	TotalAgents   int64 `json:"totalAgents"`
	PendingAgents int64 `json:"pendingAgents"`
	ActiveAgents  int64 `json:"activeAgents"`
	BannedAgents  int64 `json:"bannedAgents"`

	// Work queues
	PendingOrders    int64 `json:"pendingOrders"`
	PendingGigOrders int64 `json:"pendingGigOrders"`
	PendingCashouts  int64 `json:"pendingCashouts"`

	// Money
	TotalOrders         int64           `json:"totalOrders"`
	TotalOrderValue     decimal.Decimal `json:"totalOrderValue"`
	CommissionLiability decimal.Decimal `json:"commissionLiability"`
}

// GetAdminDashboard returns the admin home page aggregates
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// Agent counts by status
	s.db.WithContext(ctx).Table("users").Where("role = ?", "agent").Count(&data.TotalAgents)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND status = ?", "agent", "pending").Count(&data.PendingAgents)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND status = ?", "agent", "active").Count(&data.ActiveAgents)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND status = ?", "agent", "banned").Count(&data.BannedAgents)

	// Work queues
	s.db.WithContext(ctx).Table("orders").
		Where("status IN ?", []string{"pending_payment", "processing"}).
		Count(&data.PendingOrders)
	s.db.WithContext(ctx).Table("gig_orders").
		Where("status NOT IN ?", []string{"completed", "cancelled"}).
		Count(&data.PendingGigOrders)
	s.db.WithContext(ctx).Table("cashout_requests").
		Where("status = ?", "pending").
		Count(&data.PendingCashouts)

	// Money
	s.db.WithContext(ctx).Table("orders").Count(&data.TotalOrders)

	var totalValue, liability decimal.NullDecimal
	s.db.WithContext(ctx).Table("orders").
		Select("COALESCE(SUM(price_paid), 0)").
		Scan(&totalValue)
	s.db.WithContext(ctx).Table("users").
		Where("role = ?", "agent").
		Select("COALESCE(SUM(commission_balance), 0)").
		Scan(&liability)

	data.TotalOrderValue = totalValue.Decimal
	data.CommissionLiability = liability.Decimal

	return data, nil
}
