package services

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
)

// Settings service errors
var (
	ErrRateOutOfRange = errors.New("commission rate must be between 0 and 1")
)

var maxCommissionRate = decimal.NewFromInt(1)

// SettingsService manages platform-wide settings
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the current platform settings, creating the default row
// when none exists yet.
func (s *SettingsService) Get(ctx context.Context) (*models.PlatformSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents an admin settings update
type UpdateSettingsInput struct {
	DataBundleCommissionRate decimal.Decimal `json:"dataBundleCommissionRate" validate:"required"`
}

// Update changes the global data bundle commission rate. The new rate
// applies to orders created afterwards; existing orders keep the
// commission they were credited with.
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.PlatformSettings, error) {
	rate := input.DataBundleCommissionRate
	if rate.IsNegative() || rate.GreaterThan(maxCommissionRate) {
		return nil, ErrRateOutOfRange
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.DataBundleCommissionRate = rate
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	log.Printf("✅ Commission rate updated to %s", rate.String())
	return settings, nil
}
