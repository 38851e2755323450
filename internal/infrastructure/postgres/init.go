package postgres

import (
	"fmt"
	"log"

	"github.com/LavaJover/shvark-pricing-service/internal/config"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.PricingConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PricingDB.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open pricing db: %w", err)
	}

	if cfg.PricingDB.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func MustInitDB(cfg *config.PricingConfig) *gorm.DB {
	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err)
	}
	return db
}

// AutoMigrate creates the pricing schema from the gorm models. The SQL
// migrations remain the source of truth in deployed environments.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate pricing schema: %w", err)
	}
	return nil
}
