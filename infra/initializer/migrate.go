package initializer

import (
	"fmt"

	"github.com/amirasaad/agribank/infra"
	infra_repository "github.com/amirasaad/agribank/infra/repository"
	"github.com/amirasaad/agribank/pkg/config"
	"gorm.io/gorm"
)

// Migrate connects to the configured database and creates or updates every
// ledger table.
func Migrate(cfg *config.App) error {
	logger := setupLogger(cfg.Log)
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return err
	}
	if err := AutoMigrate(db); err != nil {
		logger.Error("Migration failed", "error", err)
		return err
	}
	logger.Info("Migration complete", "tables", len(infra_repository.Models()))
	return nil
}

// AutoMigrate runs gorm's AutoMigrate over all persistent models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(infra_repository.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
