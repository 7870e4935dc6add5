package slot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/config"
	"github.com/pageza/recipebox/internal/database"
)

// Open builds the slot selected by cfg.SlotBackend
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Slot, error) {
	log = log.With(zap.String("backend", cfg.SlotBackend), zap.String("slot", cfg.SlotName))

	switch cfg.SlotBackend {
	case config.BackendMemory:
		log.Warn("using in-memory slot, session state will not survive a restart")
		return NewMemory(cfg.SlotName), nil

	case config.BackendFile:
		log.Info("using file slot", zap.String("path", cfg.SlotFile))
		return NewFile(cfg.SlotName, cfg.SlotFile), nil

	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return NewRedis(cfg.SlotName, client, true), nil

	case config.BackendSQLite, config.BackendPostgres:
		db, err := openSQL(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db, log); err != nil {
			database.Close(db)
			return nil, err
		}
		return NewSQL(cfg.SlotName, db, func() error { return database.Close(db) }), nil

	case config.BackendS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		log.Info("using s3 slot", zap.String("bucket", s3cfg.BucketName))
		return NewS3(cfg.SlotName, s3cfg.Client, s3cfg.BucketName, s3cfg.Prefix), nil
	}

	return nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
}

func openSQL(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.SlotBackend == config.BackendPostgres {
		return database.NewPostgres(ctx, cfg, log)
	}
	return database.NewSQLite(cfg.SQLitePath, log)
}
