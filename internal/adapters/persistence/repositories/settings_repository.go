package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
)

// DefaultCommissionRate is the platform-wide commission rate used
// until an admin configures one (5% on data bundle sales).
var DefaultCommissionRate = decimal.NewFromFloat(0.05)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new platform settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with defaults if
// missing
func (r *settingsRepository) Get(ctx context.Context) (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.PlatformSettings{DataBundleCommissionRate: DefaultCommissionRate}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update saves the settings row
func (r *settingsRepository) Update(ctx context.Context, settings *models.PlatformSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
