package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

// In-memory repository fakes. The money-moving methods mirror the
// transactional guarantees of the GORM implementations so the services
// can be exercised without a database.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListAgents(_ context.Context, status, search string, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		if !u.IsAgent() {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		if search != "" && !strings.Contains(u.Name, search) && !strings.Contains(u.Email, search) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uint, status string, isApproved bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	u.IsApproved = isApproved
	return nil
}

func (r *fakeUserRepo) UpdateSubscription(_ context.Context, id uint, status string, expiry *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.SubscriptionStatus = status
	u.SubscriptionExpiryDate = expiry
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hashed string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashed
	return nil
}

func (r *fakeUserRepo) UpdateLastDismissedMessage(_ context.Context, id uint, messageID uint) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastDismissedMessageID = &messageID
	return nil
}

func (r *fakeUserRepo) CreditBalance(_ context.Context, id uint, amount decimal.Decimal) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CommissionBalance = u.CommissionBalance.Add(amount)
	return nil
}

func (r *fakeUserRepo) ExpireSubscriptions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsAgent() &&
			u.SubscriptionStatus == string(domain.SubscriptionActive) &&
			u.SubscriptionExpiryDate != nil &&
			u.SubscriptionExpiryDate.Before(now) {
			u.SubscriptionStatus = string(domain.SubscriptionExpired)
			n++
		}
	}
	return n, nil
}

type fakeBundleRepo struct {
	bundles map[uint]*models.DataBundle
	nextID  uint
}

func newFakeBundleRepo() *fakeBundleRepo {
	return &fakeBundleRepo{bundles: map[uint]*models.DataBundle{}, nextID: 1}
}

func (r *fakeBundleRepo) Create(_ context.Context, bundle *models.DataBundle) error {
	bundle.ID = r.nextID
	r.nextID++
	r.bundles[bundle.ID] = bundle
	return nil
}

func (r *fakeBundleRepo) GetByID(_ context.Context, id uint) (*models.DataBundle, error) {
	b, ok := r.bundles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBundleRepo) Update(_ context.Context, bundle *models.DataBundle) error {
	if _, ok := r.bundles[bundle.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *bundle
	r.bundles[bundle.ID] = &cp
	return nil
}

func (r *fakeBundleRepo) Delete(_ context.Context, id uint) error {
	delete(r.bundles, id)
	return nil
}

func (r *fakeBundleRepo) List(_ context.Context, activeOnly bool) ([]*models.DataBundle, error) {
	var out []*models.DataBundle
	for _, b := range r.bundles {
		if activeOnly && !b.IsActive {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBundleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.bundles)), nil
}

type fakeGigRepo struct {
	gigs   map[uint]*models.Gig
	nextID uint
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: map[uint]*models.Gig{}, nextID: 1}
}

func (r *fakeGigRepo) Create(_ context.Context, gig *models.Gig) error {
	gig.ID = r.nextID
	r.nextID++
	r.gigs[gig.ID] = gig
	return nil
}

func (r *fakeGigRepo) GetByID(_ context.Context, id uint) (*models.Gig, error) {
	g, ok := r.gigs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGigRepo) Update(_ context.Context, gig *models.Gig) error {
	if _, ok := r.gigs[gig.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *gig
	r.gigs[gig.ID] = &cp
	return nil
}

func (r *fakeGigRepo) Delete(_ context.Context, id uint) error {
	delete(r.gigs, id)
	return nil
}

func (r *fakeGigRepo) List(_ context.Context, activeOnly bool) ([]*models.Gig, error) {
	var out []*models.Gig
	for _, g := range r.gigs {
		if activeOnly && !g.IsActive {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders   map[uint]*models.Order
	nextID   uint
	userRepo *fakeUserRepo
}

func newFakeOrderRepo(userRepo *fakeUserRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*models.Order{}, nextID: 1, userRepo: userRepo}
}

func (r *fakeOrderRepo) CreateWithCommission(ctx context.Context, order *models.Order, commission decimal.Decimal) error {
	if err := r.userRepo.CreditBalance(ctx, order.AgentID, commission); err != nil {
		return err
	}
	order.ID = r.nextID
	r.nextID++
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) ListByAgent(_ context.Context, agentID uint, _, _ int) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range r.orders {
		if o.AgentID == agentID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) List(_ context.Context, status string, _, _ int) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

type fakeGigOrderRepo struct {
	orders   map[uint]*models.GigOrder
	nextID   uint
	userRepo *fakeUserRepo
}

func newFakeGigOrderRepo(userRepo *fakeUserRepo) *fakeGigOrderRepo {
	return &fakeGigOrderRepo{orders: map[uint]*models.GigOrder{}, nextID: 1, userRepo: userRepo}
}

func (r *fakeGigOrderRepo) Create(_ context.Context, order *models.GigOrder) error {
	order.ID = r.nextID
	r.nextID++
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeGigOrderRepo) GetByID(_ context.Context, id uint) (*models.GigOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeGigOrderRepo) Update(_ context.Context, order *models.GigOrder) error {
	if _, ok := r.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeGigOrderRepo) UpdateWithCommission(ctx context.Context, order *models.GigOrder, commission decimal.Decimal) error {
	// Conditional flip: an already-completed order never credits again
	stored, ok := r.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status == string(domain.GigOrderCompleted) {
		return nil
	}
	if err := r.Update(ctx, order); err != nil {
		return err
	}
	return r.userRepo.CreditBalance(ctx, order.AgentID, commission)
}

func (r *fakeGigOrderRepo) ListByAgent(_ context.Context, agentID uint, _, _ int) ([]*models.GigOrder, int64, error) {
	var out []*models.GigOrder
	for _, o := range r.orders {
		if o.AgentID == agentID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeGigOrderRepo) List(_ context.Context, status string, _, _ int) ([]*models.GigOrder, int64, error) {
	var out []*models.GigOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

type fakeCashoutRepo struct {
	cashouts map[uint]*models.CashoutRequest
	nextID   uint
	userRepo *fakeUserRepo
}

func newFakeCashoutRepo(userRepo *fakeUserRepo) *fakeCashoutRepo {
	return &fakeCashoutRepo{cashouts: map[uint]*models.CashoutRequest{}, nextID: 1, userRepo: userRepo}
}

func (r *fakeCashoutRepo) CreateWithDebit(_ context.Context, req *models.CashoutRequest) error {
	u, ok := r.userRepo.users[req.AgentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if u.CommissionBalance.LessThan(req.Amount) {
		return domain.ErrInsufficientBalance
	}
	u.CommissionBalance = u.CommissionBalance.Sub(req.Amount)

	req.ID = r.nextID
	r.nextID++
	cp := *req
	r.cashouts[req.ID] = &cp
	return nil
}

func (r *fakeCashoutRepo) GetByID(_ context.Context, id uint) (*models.CashoutRequest, error) {
	cr, ok := r.cashouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cr
	return &cp, nil
}

func (r *fakeCashoutRepo) Update(_ context.Context, req *models.CashoutRequest) error {
	if _, ok := r.cashouts[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *req
	r.cashouts[req.ID] = &cp
	return nil
}

func (r *fakeCashoutRepo) UpdateWithRefund(ctx context.Context, req *models.CashoutRequest) error {
	// Conditional flip: an already-rejected request never refunds again
	stored, ok := r.cashouts[req.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status == string(domain.CashoutRejected) {
		return nil
	}
	if err := r.Update(ctx, req); err != nil {
		return err
	}
	// Deleted agents leave nothing to refund
	if u, ok := r.userRepo.users[req.AgentID]; ok {
		u.CommissionBalance = u.CommissionBalance.Add(req.Amount)
	}
	return nil
}

func (r *fakeCashoutRepo) ListByAgent(_ context.Context, agentID uint, _, _ int) ([]*models.CashoutRequest, int64, error) {
	var out []*models.CashoutRequest
	for _, cr := range r.cashouts {
		if cr.AgentID == agentID {
			cp := *cr
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCashoutRepo) List(_ context.Context, status string, _, _ int) ([]*models.CashoutRequest, int64, error) {
	var out []*models.CashoutRequest
	for _, cr := range r.cashouts {
		if status != "" && cr.Status != status {
			continue
		}
		cp := *cr
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

type fakeSettingsRepo struct {
	settings *models.PlatformSettings
}

func newFakeSettingsRepo(rate decimal.Decimal) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: &models.PlatformSettings{ID: 1, DataBundleCommissionRate: rate}}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.PlatformSettings, error) {
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *models.PlatformSettings) error {
	cp := *settings
	r.settings = &cp
	return nil
}

type fakeMessageRepo struct {
	messages map[uint]*models.GlobalMessage
	nextID   uint
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[uint]*models.GlobalMessage{}, nextID: 1}
}

func (r *fakeMessageRepo) Publish(_ context.Context, msg *models.GlobalMessage) error {
	for _, m := range r.messages {
		m.IsActive = false
	}
	msg.ID = r.nextID
	r.nextID++
	msg.IsActive = true
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) GetActive(_ context.Context) (*models.GlobalMessage, error) {
	for _, m := range r.messages {
		if m.IsActive {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMessageRepo) List(_ context.Context, _, _ int) ([]*models.GlobalMessage, int64, error) {
	var out []*models.GlobalMessage
	for _, m := range r.messages {
		cp := *m
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

// Interface conformance
var (
	_ repositories.UserRepository     = (*fakeUserRepo)(nil)
	_ repositories.BundleRepository   = (*fakeBundleRepo)(nil)
	_ repositories.GigRepository      = (*fakeGigRepo)(nil)
	_ repositories.OrderRepository    = (*fakeOrderRepo)(nil)
	_ repositories.GigOrderRepository = (*fakeGigOrderRepo)(nil)
	_ repositories.CashoutRepository  = (*fakeCashoutRepo)(nil)
	_ repositories.SettingsRepository = (*fakeSettingsRepo)(nil)
	_ repositories.MessageRepository  = (*fakeMessageRepo)(nil)
)
