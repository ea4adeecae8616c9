package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/handler"
	mid "github.com/apper-canvas/staffhub-core-dash/internal/middleware"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/config"
	"github.com/apper-canvas/staffhub-core-dash/pkg/database"
	"github.com/apper-canvas/staffhub-core-dash/pkg/jwtutil"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

// openRepositories selects the repository backend from DB_DRIVER
func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	log := logger.GetLogger()

	if cfg.DB.Driver == config.DriverMemory {
		repos := repository.NewMemoryRepositories(cfg.Mock.Latency)
		if cfg.Mock.SeedFile != "" {
			fixtures, err := repository.LoadFixtures(cfg.Mock.SeedFile)
			if err != nil {
				return nil, err
			}
			if err := repos.Seed(ctx, fixtures); err != nil {
				return nil, err
			}
			log.Info("Mock repository seeded", zap.String("seed_file", cfg.Mock.SeedFile))
		}
		return repos, nil
	}

	if err := database.InitDB(cfg); err != nil {
		return nil, err
	}
	return repository.NewGormRepositories(database.GetDB()), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()
	log.Info("Starting "+serviceName, appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, appConfig)
	if err != nil {
		return err
	}
	defer database.Close()
	log.Info("Repositories ready", zap.String("driver", appConfig.DB.Driver))

	var jwt *jwtutil.JWTUtil
	if appConfig.Auth.Enabled {
		jwt = jwtutil.NewJWTUtil(&appConfig.JWT)
		log.Info("JWT utility initialized")
	} else {
		log.Warn("Bearer token authentication is disabled")
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	handler.RegisterRoutes(e, handler.Options{
		ServiceName:  serviceName,
		Repositories: repos,
		JWT:          jwt,
	})

	errCh := make(chan error, 1)
	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
