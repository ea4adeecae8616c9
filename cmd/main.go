package main

import (
	"fmt"
	"os"

	"github.com/apper-canvas/staffhub-core-dash/pkg/config"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "staffhub-core"

var appConfig *config.Config

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "staffhub",
	Short: "StaffHub HR dashboard backend",
	Long: `StaffHub serves employees, departments, tasks, reviews, the dashboard
statistics and the calendar as a JSON API.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serviceName)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.InitLogger(cfg); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.GetLogger().Sync()
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if appConfig != nil {
			logger.GetLogger().Error("Command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}
