package config

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/models"
)

// Launch catalog: prices in Ghana cedis, all bundles valid 90 days.

var mtnBundles = map[string]string{
	"1GB": "6.00", "2GB": "12.00", "3GB": "16.00", "4GB": "21.00",
	"5GB": "27.00", "6GB": "31.00", "7GB": "36.00", "8GB": "40.00",
	"10GB": "46.00", "15GB": "67.00", "20GB": "84.00", "25GB": "105.00",
	"30GB": "126.00", "40GB": "163.00", "50GB": "201.00", "100GB": "396.00",
}

var airtelTigoBundles = map[string]string{
	"1GB": "6.00", "2GB": "10.00", "3GB": "16.00", "4GB": "21.00",
	"5GB": "25.00", "6GB": "27.00", "7GB": "31.00", "8GB": "36.00",
	"9GB": "40.00", "10GB": "44.00", "15GB": "57.00", "20GB": "66.00",
	"25GB": "81.00", "30GB": "91.00", "40GB": "106.00", "50GB": "116.00",
	"60GB": "126.00", "80GB": "156.00", "100GB": "217.00",
}

var telecelBundles = map[string]string{
	"5GB": "28.00", "10GB": "47.00", "15GB": "68.00", "20GB": "89.00",
	"25GB": "109.00", "30GB": "127.00", "40GB": "169.00", "50GB": "207.00",
	"100GB": "414.00",
}

// SeedBundleCatalog seeds the data bundle catalog for the three
// supported networks. Skips if any bundle already exists.
func SeedBundleCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DataBundle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	networks := []struct {
		name string
		raw  map[string]string
	}{
		{"MTN", mtnBundles},
		{"AirtelTigo", airtelTigoBundles},
		{"Telecel", telecelBundles},
	}

	seeded := 0
	for _, network := range networks {
		for amount, priceStr := range network.raw {
			price, err := decimal.NewFromString(priceStr)
			if err != nil {
				return fmt.Errorf("invalid price %q for %s %s: %w", priceStr, network.name, amount, err)
			}
			bundle := &models.DataBundle{
				Name:               fmt.Sprintf("%s %s", network.name, amount),
				DataAmount:         amount,
				Price:              price,
				ValidityPeriodDays: 90,
				IsActive:           true,
				Description:        fmt.Sprintf("Authentic %s data bundle. Valid for 90 days.", network.name),
			}
			if err := db.Create(bundle).Error; err != nil {
				return err
			}
			seeded++
		}
	}

	log.Printf("✅ Bundle catalog seeded: %d bundles", seeded)
	return nil
}
