package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/config"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
)

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}, nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

var _ repositories.RefreshTokenRepository = (*fakeRefreshTokenRepo)(nil)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AuthTokenHours:   24,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func TestRegisterDefaults(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "Abena@Example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Role != string(domain.RoleAgent) {
		t.Errorf("Role = %q, want agent", user.Role)
	}
	if user.Status != string(domain.AgentPending) {
		t.Errorf("Status = %q, want pending", user.Status)
	}
	if user.SubscriptionStatus != string(domain.SubscriptionNone) {
		t.Errorf("SubscriptionStatus = %q, want none", user.SubscriptionStatus)
	}
	if user.IsApproved {
		t.Error("IsApproved = true, want false")
	}
	if !user.CommissionBalance.IsZero() {
		t.Errorf("CommissionBalance = %v, want 0", user.CommissionBalance)
	}

	// Email is normalized and the password stored hashed
	stored, err := userRepo.GetByEmail(context.Background(), "abena@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	input := &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() duplicate error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "abc",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Register() error = %v, want ErrPasswordTooShort", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abena@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.AuthToken == "" || result.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}

	claims, err := svc.ValidateAuthToken(result.AuthToken)
	if err != nil {
		t.Fatalf("ValidateAuthToken() error = %v", err)
	}
	if claims.Email != "abena@example.com" || claims.Role != string(domain.RoleAgent) {
		t.Errorf("claims = (%s, %s), want (abena@example.com, agent)", claims.Email, claims.Role)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abena@example.com",
		Password: "wrong",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown email) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginAllowsNonActiveAgents(t *testing.T) {
	// Pending and banned agents can still log in to see their status;
	// ordering is blocked separately.
	svc, userRepo, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	user, _ := userRepo.GetByEmail(context.Background(), "abena@example.com")
	userRepo.UpdateStatus(context.Background(), user.ID, string(domain.AgentBanned), false)

	if _, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abena@example.com",
		Password: "secret123",
	}); err != nil {
		t.Errorf("Login() for banned agent error = %v, want nil", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	login, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abena@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked by rotation
	if _, err := svc.RefreshToken(context.Background(), login.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("RefreshToken(old) error = %v, want ErrTokenRevoked", err)
	}

	// The new one still works
	if _, err := svc.RefreshToken(context.Background(), refreshed.RefreshToken); err != nil {
		t.Errorf("RefreshToken(new) error = %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Name:        "Abena Sarpong",
		Email:       "abena@example.com",
		PhoneNumber: "0244123456",
		Password:    "secret123",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	login, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abena@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), login.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("RefreshToken() after logout error = %v, want ErrTokenRevoked", err)
	}
}
