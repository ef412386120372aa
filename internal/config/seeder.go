package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/core/domain"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}
	if err := SeedBundleCatalog(s.db); err != nil {
		log.Printf("⚠️ Bundle catalog seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default platform administrator.
// This is for development/testing only; in production, create the
// admin through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Platform Administrator",
		Email:    "admin@dataflexghana.com",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		Status:   string(domain.AgentActive),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin seeded: %s", admin.Email)
	return nil
}

// seedSettings ensures the single platform settings row exists
func (s *Seeder) seedSettings() error {
	var count int64
	s.db.Model(&models.PlatformSettings{}).Count(&count)
	if count > 0 {
		return nil
	}

	settings := &models.PlatformSettings{
		DataBundleCommissionRate: repositories.DefaultCommissionRate,
	}
	return s.db.Create(settings).Error
}
