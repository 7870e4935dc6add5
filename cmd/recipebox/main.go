package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/recipebox/config"
)

var (
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Recipe browsing and authoring backend",
	Long: `recipebox serves a seeded recipe collection with local sessions,
favorites and user authored recipes over HTTP.

The session subset (favorites and the current user) is kept in a single
durable slot selected with SLOT_BACKEND.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(config.GetEnvironment(), os.Getenv("LOG_LEVEL"), verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	slotCmd.AddCommand(slotShowCmd, slotResetCmd)
	rootCmd.AddCommand(serveCmd, slotCmd, seedCmd, migrateCmd)
}

// newLogger builds a development logger outside production and a JSON
// production logger otherwise. verbose forces debug level.
func newLogger(env config.Environment, level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == config.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
