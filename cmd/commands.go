package main

import (
	"fmt"

	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/config"
	"github.com/apper-canvas/staffhub-core-dash/pkg/database"
	"github.com/apper-canvas/staffhub-core-dash/pkg/jwtutil"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.DB.Driver == config.DriverMemory {
			return fmt.Errorf("migrate needs DB_DRIVER=%s or %s", config.DriverPostgres, config.DriverSQLite)
		}
		if err := database.InitDB(appConfig); err != nil {
			return err
		}
		defer database.Close()
		logger.GetLogger().Info("Database migrated", zap.String("driver", appConfig.DB.Driver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>",
	Short: "Load YAML fixtures into the configured database",
	Long: `Load departments, employees, tasks and reviews from a YAML file.

Records are created in file order, so run it against an empty database when
fixtures refer to each other by id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.DB.Driver == config.DriverMemory {
			return fmt.Errorf("seed needs a database; set MOCK_SEED_FILE to seed the mock repository")
		}
		fixtures, err := repository.LoadFixtures(args[0])
		if err != nil {
			return err
		}
		if err := database.InitDB(appConfig); err != nil {
			return err
		}
		defer database.Close()

		repos := repository.NewGormRepositories(database.GetDB())
		if err := repos.Seed(cmd.Context(), fixtures); err != nil {
			return err
		}
		logger.GetLogger().Info("Fixtures loaded",
			zap.String("file", args[0]),
			zap.Int("departments", len(fixtures.Departments)),
			zap.Int("employees", len(fixtures.Employees)),
			zap.Int("tasks", len(fixtures.Tasks)),
			zap.Int("reviews", len(fixtures.Reviews)))
		return nil
	},
}

var (
	tokenEmail  string
	tokenUserID uint
	tokenRole   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.IsProduction() {
			return fmt.Errorf("token is not available in production")
		}
		token, err := jwtutil.NewJWTUtil(&appConfig.JWT).GenerateToken(tokenEmail, tokenUserID, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "admin@staffhub.local", "Email claim")
	tokenCmd.Flags().UintVar(&tokenUserID, "user-id", 1, "User id claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "Role claim")
}
