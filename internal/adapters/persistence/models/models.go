package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents the users table. Agents are users with role=agent;
// the platform administrator is role=admin.
type User struct {
	ID                     uint                      `gorm:"primaryKey" json:"id"`
	Name                   string                    `gorm:"size:100;not null" json:"name"`
	Email                  string                    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber            string                    `gorm:"column:phone_number;size:20" json:"phoneNumber"`
	Password               string                    `gorm:"size:255;not null" json:"-"`
	Role                   string                    `gorm:"size:20;default:'agent'" json:"role"`
	Status                 string                    `gorm:"size:20;default:'pending'" json:"status"`
	SubscriptionStatus     string                    `gorm:"column:subscription_status;size:20;default:'none'" json:"subscriptionStatus"`
	SubscriptionExpiryDate *time.Time                `gorm:"column:subscription_expiry_date" json:"subscriptionExpiryDate"`
	IsApproved             bool                      `gorm:"column:is_approved;default:false" json:"isApproved"`
	CommissionBalance      decimal.Decimal           `gorm:"column:commission_balance;type:decimal(12,2);default:0" json:"commissionBalance"`
	LastDismissedMessageID *uint                     `gorm:"column:last_dismissed_message_id" json:"lastDismissedMessageId"`
	CreatedAt              time.Time                 `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time                 `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// IsAgent reports whether the user is an agent
func (u *User) IsAgent() bool {
	return u.Role == string(domain.RoleAgent)
}

// SubscriptionCurrent reports whether the agent holds a usable
// subscription: status active and expiry (when set) still in the future
func (u *User) SubscriptionCurrent(now time.Time) bool {
	if u.SubscriptionStatus != string(domain.SubscriptionActive) {
		return false
	}
	if u.SubscriptionExpiryDate != nil && !u.SubscriptionExpiryDate.After(now) {
		return false
	}
	return true
}

// UserResponse DTO
type UserResponse struct {
	ID                     uint            `json:"id"`
	Name                   string          `json:"name"`
	Email                  string          `json:"email"`
	PhoneNumber            string          `json:"phoneNumber,omitempty"`
	Role                   string          `json:"role"`
	Status                 string          `json:"status,omitempty"`
	SubscriptionStatus     string          `json:"subscriptionStatus,omitempty"`
	SubscriptionExpiryDate *time.Time      `json:"subscriptionExpiryDate"`
	IsApproved             bool            `json:"isApproved"`
	CommissionBalance      decimal.Decimal `json:"commissionBalance"`
	LastDismissedMessageID *uint           `json:"lastDismissedMessageId,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		PhoneNumber:            u.PhoneNumber,
		Role:                   u.Role,
		Status:                 u.Status,
		SubscriptionStatus:     u.SubscriptionStatus,
		SubscriptionExpiryDate: u.SubscriptionExpiryDate,
		IsApproved:             u.IsApproved,
		CommissionBalance:      u.CommissionBalance,
		LastDismissedMessageID: u.LastDismissedMessageID,
		CreatedAt:              u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog
// ============================================================

// DataBundle represents the data_bundles table
type DataBundle struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	DataAmount         string          `gorm:"column:data_amount;size:20;not null" json:"dataAmount"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ValidityPeriodDays int             `gorm:"column:validity_period_days;not null" json:"validityPeriodDays"`
	IsActive           bool            `gorm:"column:is_active;default:true" json:"isActive"`
	Description        string          `gorm:"type:text" json:"description"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (DataBundle) TableName() string {
	return "data_bundles"
}

// Gig represents the gigs table. Commission is a fixed amount, not a
// percentage.
type Gig struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Description        string          `gorm:"type:text" json:"description"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Commission         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"commission"`
	IsActive           bool            `gorm:"column:is_active;default:true" json:"isActive"`
	Category           string          `gorm:"size:50" json:"category"`
	ImageURL           string          `gorm:"column:image_url;size:255" json:"imageUrl"`
	TermsAndConditions string          `gorm:"column:terms_and_conditions;type:text" json:"termsAndConditions"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Gig) TableName() string {
	return "gigs"
}

// ============================================================
// Orders
// ============================================================

// Order represents the orders table (data bundle purchases). Bundle
// name and price are snapshots taken at order time, so later catalog
// edits never change historical orders.
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	AgentID          uint            `gorm:"column:agent_id;index;not null" json:"agentId"`
	BundleID         uint            `gorm:"column:bundle_id;not null" json:"bundleId"`
	BundleName       string          `gorm:"column:bundle_name;size:100" json:"bundleName"`
	OrderDate        time.Time       `gorm:"column:order_date;not null" json:"orderDate"`
	Status           string          `gorm:"size:30;default:'pending_payment'" json:"status"`
	PricePaid        decimal.Decimal `gorm:"column:price_paid;type:decimal(10,2);not null" json:"pricePaid"`
	CommissionEarned decimal.Decimal `gorm:"column:commission_earned;type:decimal(10,2);default:0" json:"commissionEarned"`
	PaymentReference string          `gorm:"column:payment_reference;size:100" json:"paymentReference"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// GigOrder represents the gig_orders table
type GigOrder struct {
	ID                    uint             `gorm:"primaryKey" json:"id"`
	AgentID               uint             `gorm:"column:agent_id;index;not null" json:"agentId"`
	GigID                 uint             `gorm:"column:gig_id;not null" json:"gigId"`
	GigName               string           `gorm:"column:gig_name;size:100" json:"gigName"`
	OrderDate             time.Time        `gorm:"column:order_date;not null" json:"orderDate"`
	Status                string           `gorm:"size:30;default:'pending_payment'" json:"status"`
	PricePaid             decimal.Decimal  `gorm:"column:price_paid;type:decimal(10,2);not null" json:"pricePaid"`
	AgentCommissionEarned *decimal.Decimal `gorm:"column:agent_commission_earned;type:decimal(10,2)" json:"agentCommissionEarned"`
	ClientName            string           `gorm:"column:client_name;size:100" json:"clientName"`
	ClientContact         string           `gorm:"column:client_contact;size:100" json:"clientContact"`
	Requirements          string           `gorm:"type:text" json:"requirements"`
	AgentNotes            string           `gorm:"column:agent_notes;type:text" json:"agentNotes"`
	AdminNotes            string           `gorm:"column:admin_notes;type:text" json:"adminNotes"`
	ProcessedDate         *time.Time       `gorm:"column:processed_date" json:"processedDate"`
	PaymentReference      string           `gorm:"column:payment_reference;size:100" json:"paymentReference"`
	CreatedAt             time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (GigOrder) TableName() string {
	return "gig_orders"
}

// ============================================================
// Cashouts
// ============================================================

// CashoutRequest represents the cashout_requests table. The balance
// debit happens at request time, so approval has no balance effect and
// rejection refunds.
type CashoutRequest struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	AgentID              uint            `gorm:"column:agent_id;index;not null" json:"agentId"`
	Amount               decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	RequestedDate        time.Time       `gorm:"column:requested_date;not null" json:"requestedDate"`
	Status               string          `gorm:"size:20;default:'pending'" json:"status"`
	ProcessedDate        *time.Time      `gorm:"column:processed_date" json:"processedDate"`
	TransactionReference string          `gorm:"column:transaction_reference;size:100" json:"transactionReference"`
	AdminNotes           string          `gorm:"column:admin_notes;type:text" json:"adminNotes"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CashoutRequest) TableName() string {
	return "cashout_requests"
}

// ============================================================
// Platform
// ============================================================

// GlobalMessage represents the global_messages table. At most one row
// is active at a time; publishing deactivates the rest.
type GlobalMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	AdminID   uint      `gorm:"column:admin_id" json:"adminId"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (GlobalMessage) TableName() string {
	return "global_messages"
}

// PlatformSettings represents the platform_settings table. Single row.
type PlatformSettings struct {
	ID                       uint            `gorm:"primaryKey" json:"id"`
	DataBundleCommissionRate decimal.Decimal `gorm:"column:data_bundle_commission_rate;type:decimal(5,4);not null" json:"dataBundleCommissionRate"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PlatformSettings) TableName() string {
	return "platform_settings"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&DataBundle{},
		&Gig{},
		&Order{},
		&GigOrder{},
		&CashoutRequest{},
		&GlobalMessage{},
		&PlatformSettings{},
	)
}
