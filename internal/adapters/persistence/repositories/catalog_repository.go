package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
)

// bundleRepository implements BundleRepository interface
type bundleRepository struct {
	db *gorm.DB
}

// NewBundleRepository creates a new data bundle repository
func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepository{db: db}
}

func (r *bundleRepository) Create(ctx context.Context, bundle *models.DataBundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *bundleRepository) GetByID(ctx context.Context, id uint) (*models.DataBundle, error) {
	var bundle models.DataBundle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bundle).Error
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) Update(ctx context.Context, bundle *models.DataBundle) error {
	return r.db.WithContext(ctx).Save(bundle).Error
}

func (r *bundleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DataBundle{}, id).Error
}

func (r *bundleRepository) List(ctx context.Context, activeOnly bool) ([]*models.DataBundle, error) {
	var bundles []*models.DataBundle
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (r *bundleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DataBundle{}).Count(&count).Error
	return count, err
}

// gigRepository implements GigRepository interface
type gigRepository struct {
	db *gorm.DB
}

// NewGigRepository creates a new gig repository
func NewGigRepository(db *gorm.DB) GigRepository {
	return &gigRepository{db: db}
}

func (r *gigRepository) Create(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Create(gig).Error
}

func (r *gigRepository) GetByID(ctx context.Context, id uint) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&gig).Error
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

func (r *gigRepository) Update(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Save(gig).Error
}

func (r *gigRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Gig{}, id).Error
}

func (r *gigRepository) List(ctx context.Context, activeOnly bool) ([]*models.Gig, error) {
	var gigs []*models.Gig
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&gigs).Error; err != nil {
		return nil, err
	}
	return gigs, nil
}
