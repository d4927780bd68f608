// Package database opens the MySQL connection and keeps the schema
// migrated.
package database

import (
	"fmt"

	"github.com/meridian-institute/core/internal/config"
	"github.com/meridian-institute/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// migrate runs GORM auto-migration for all models.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProfileModel{},
		&models.CategoryModel{},
		&models.TagModel{},
		&models.PublicationModel{},
		&models.PolicyModel{},
		&models.CaseStudyModel{},
		&models.EventModel{},
		&models.PartnerModel{},
		&models.TeamMemberModel{},
		&models.ContactSubmissionModel{},
		&models.OptionModel{},
	)
}
