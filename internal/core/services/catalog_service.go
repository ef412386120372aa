package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
)

// Catalog service errors
var (
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrNegativeCommission = errors.New("commission cannot be negative")
	ErrEmptyName          = errors.New("name is required")
)

// CatalogService manages the data bundle and gig catalogs
type CatalogService struct {
	bundleRepo repositories.BundleRepository
	gigRepo    repositories.GigRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(bundleRepo repositories.BundleRepository, gigRepo repositories.GigRepository) *CatalogService {
	return &CatalogService{
		bundleRepo: bundleRepo,
		gigRepo:    gigRepo,
	}
}

// ListBundles lists data bundles. Agents see active bundles only,
// admins see everything.
func (s *CatalogService) ListBundles(ctx context.Context, activeOnly bool) ([]*models.DataBundle, error) {
	return s.bundleRepo.List(ctx, activeOnly)
}

// BundleInput represents bundle create/update input
type BundleInput struct {
	Name               string          `json:"name" validate:"required"`
	DataAmount         string          `json:"dataAmount" validate:"required"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price" validate:"required"`
	ValidityPeriodDays int             `json:"validityPeriodDays" validate:"required,min=1"`
	IsActive           *bool           `json:"isActive"`
}

// CreateBundle adds a bundle to the catalog
func (s *CatalogService) CreateBundle(ctx context.Context, input *BundleInput) (*models.DataBundle, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	bundle := &models.DataBundle{
		Name:               strings.TrimSpace(input.Name),
		DataAmount:         input.DataAmount,
		Description:        input.Description,
		Price:              input.Price.Round(2),
		ValidityPeriodDays: input.ValidityPeriodDays,
		IsActive:           true,
	}
	if input.IsActive != nil {
		bundle.IsActive = *input.IsActive
	}

	if err := s.bundleRepo.Create(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// UpdateBundle updates a catalog bundle. Existing orders keep their
// name and price snapshots.
func (s *CatalogService) UpdateBundle(ctx context.Context, id uint, input *BundleInput) (*models.DataBundle, error) {
	bundle, err := s.bundleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	bundle.Name = strings.TrimSpace(input.Name)
	bundle.DataAmount = input.DataAmount
	bundle.Description = input.Description
	bundle.Price = input.Price.Round(2)
	bundle.ValidityPeriodDays = input.ValidityPeriodDays
	if input.IsActive != nil {
		bundle.IsActive = *input.IsActive
	}

	if err := s.bundleRepo.Update(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// DeleteBundle removes a bundle from the catalog
func (s *CatalogService) DeleteBundle(ctx context.Context, id uint) error {
	if _, err := s.bundleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBundleNotFound
		}
		return err
	}
	return s.bundleRepo.Delete(ctx, id)
}

// ListGigs lists gigs. Agents see active gigs only, admins see
// everything.
func (s *CatalogService) ListGigs(ctx context.Context, activeOnly bool) ([]*models.Gig, error) {
	return s.gigRepo.List(ctx, activeOnly)
}

// GigInput represents gig create/update input
type GigInput struct {
	Name               string          `json:"name" validate:"required"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	ImageURL           string          `json:"imageUrl"`
	TermsAndConditions string          `json:"termsAndConditions"`
	Price              decimal.Decimal `json:"price" validate:"required"`
	Commission         decimal.Decimal `json:"commission" validate:"required"`
	IsActive           *bool           `json:"isActive"`
}

// CreateGig adds a gig to the catalog
func (s *CatalogService) CreateGig(ctx context.Context, input *GigInput) (*models.Gig, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if input.Commission.IsNegative() {
		return nil, ErrNegativeCommission
	}

	gig := &models.Gig{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Category:           input.Category,
		ImageURL:           input.ImageURL,
		TermsAndConditions: input.TermsAndConditions,
		Price:              input.Price.Round(2),
		Commission:         input.Commission.Round(2),
		IsActive:           true,
	}
	if input.IsActive != nil {
		gig.IsActive = *input.IsActive
	}

	if err := s.gigRepo.Create(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

// UpdateGig updates a catalog gig. Completed gig orders keep the
// commission they were credited with.
func (s *CatalogService) UpdateGig(ctx context.Context, id uint, input *GigInput) (*models.Gig, error) {
	gig, err := s.gigRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if input.Commission.IsNegative() {
		return nil, ErrNegativeCommission
	}

	gig.Name = strings.TrimSpace(input.Name)
	gig.Description = input.Description
	gig.Category = input.Category
	gig.ImageURL = input.ImageURL
	gig.TermsAndConditions = input.TermsAndConditions
	gig.Price = input.Price.Round(2)
	gig.Commission = input.Commission.Round(2)
	if input.IsActive != nil {
		gig.IsActive = *input.IsActive
	}

	if err := s.gigRepo.Update(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

// DeleteGig removes a gig from the catalog
func (s *CatalogService) DeleteGig(ctx context.Context, id uint) error {
	if _, err := s.gigRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGigNotFound
		}
		return err
	}
	return s.gigRepo.Delete(ctx, id)
}
