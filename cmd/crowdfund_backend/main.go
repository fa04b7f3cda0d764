package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/core/services"
	"github.com/fundnest/crowdfund_backend/internal/handlers"
	"github.com/fundnest/crowdfund_backend/internal/middleware"
	"github.com/fundnest/crowdfund_backend/internal/notifier"
	"github.com/fundnest/crowdfund_backend/internal/platform/config"
	"github.com/fundnest/crowdfund_backend/internal/repositories/database/pgsql"
	"github.com/fundnest/crowdfund_backend/internal/scheduler"
	"github.com/fundnest/crowdfund_backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	ledgerNotifier, closeNotifiers := buildNotifier(cfg, logger)
	defer closeNotifiers()

	serviceContainer := services.NewServiceContainer(repos, ledgerNotifier, services.NewSystemClock())

	handlers.RegisterRoutes(r, cfg, serviceContainer, buildRateLimiter(cfg, logger))

	// Background lifecycle sweep
	if cfg.SweepEnabled {
		sweeper := scheduler.NewSweepScheduler(serviceContainer.Lifecycle, cfg.SweepInterval, logger)
		sweeper.Start()
		defer sweeper.Stop()
	} else {
		logger.Info("Lifecycle sweep scheduler disabled")
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection on the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildNotifier assembles the notifier fan-out from configuration. The log
// notifier is always present; PostHog and webhook adapters join when
// configured. The returned func closes any adapters that buffer events.
func buildNotifier(cfg *config.Config, logger *slog.Logger) (portssvc.Notifier, func()) {
	notifiers := []portssvc.Notifier{notifier.NewLogNotifier()}
	closers := []func(){}

	if ph := notifier.NewPosthogNotifier(cfg.PosthogAPIKey, logger); ph != nil {
		notifiers = append(notifiers, ph)
		closers = append(closers, ph.Close)
		logger.Info("PostHog notifier enabled")
	}
	if wh := notifier.NewWebhookNotifier(cfg.NotifyWebhookURL, logger); wh != nil {
		notifiers = append(notifiers, wh)
		logger.Info("Webhook notifier enabled", slog.String("url", cfg.NotifyWebhookURL))
	}

	return notifier.NewMultiNotifier(notifiers...), func() {
		for _, c := range closers {
			c()
		}
	}
}

// buildRateLimiter creates the in-memory IP rate limiter. Returns nil when
// the configured rate cannot be parsed, which disables rate limiting.
func buildRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, rate limiting disabled", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		return nil
	}
	return limiter.New(memory.NewStore(), rate)
}
