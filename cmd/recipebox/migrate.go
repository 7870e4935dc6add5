package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/config"
	"github.com/pageza/recipebox/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the slot table for the sqlite and postgres backends",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var db *gorm.DB
	switch cfg.SlotBackend {
	case config.BackendPostgres:
		db, err = database.NewPostgres(cmd.Context(), cfg, logger)
	case config.BackendSQLite:
		db, err = database.NewSQLite(cfg.SQLitePath, logger)
	default:
		logger.Info("nothing to migrate", zap.String("slot_backend", cfg.SlotBackend))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	return database.RunMigrations(db, logger)
}
