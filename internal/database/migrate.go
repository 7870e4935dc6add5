package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/internal/model"
)

// RunMigrations creates the tables backing the durable slots
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(&model.SlotRecord{}); err != nil {
		return fmt.Errorf("failed to migrate slot table: %w", err)
	}
	return nil
}
