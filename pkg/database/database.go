package database

import (
	"fmt"

	"marketplace-service/internal/model"
	"marketplace-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database connection, applies pool settings and runs
// migrations. The returned handle is injected into the store layer; there is
// no package-level database global.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := cfg.DB.LogLevel
	if cfg.Server.Env != "development" {
		logLevel = logger.Error
	}

	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Influencer{},
		&model.SocialNetwork{},
		&model.Buyer{},
		&model.Product{},
		&model.PricingSlab{},
		&model.CommissionSettings{},
	); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return db, nil
}
