// Package main is the entry point for the growdaily scheduling service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/growdaily/internal/adapters/clients"
	"github.com/jsamuelsen/growdaily/internal/adapters/clients/acl"
	"github.com/jsamuelsen/growdaily/internal/adapters/http"
	"github.com/jsamuelsen/growdaily/internal/adapters/http/handlers"
	"github.com/jsamuelsen/growdaily/internal/adapters/notify"
	"github.com/jsamuelsen/growdaily/internal/adapters/sqlite"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/platform/config"
	"github.com/jsamuelsen/growdaily/internal/platform/logging"
	"github.com/jsamuelsen/growdaily/internal/platform/telemetry"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open storage and create stores
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", slog.Any("error", closeErr))
		}
	}()

	quotes := sqlite.NewQuoteStore(db)
	overrides := sqlite.NewOverrideStore(db)
	settings := sqlite.NewSettingsStore(db)

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(db); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 7. Create the notification gateway. The remote daemon owns OS-level
	// delivery; the in-process gateway covers local development.
	var gateway ports.NotificationGateway

	if cfg.Notifier.Enabled {
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Notifier.BaseURL,
			ServiceName: cfg.Notifier.Name,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("creating HTTP client: %w", err)
		}

		notifierClient := acl.NewNotifierClient(acl.NotifierClientConfig{
			Client:      httpClient,
			ServiceName: cfg.Notifier.Name,
			Logger:      logger,
		})

		if err := healthRegistry.Register(notifierClient); err != nil {
			return fmt.Errorf("registering notifier health check: %w", err)
		}

		gateway = notifierClient
	} else {
		logger.Info("notifier daemon disabled, using in-process gateway")
		gateway = notify.NewMemoryGateway()
	}

	// 8. Create application services
	rotation := app.NewRotation(app.RotationConfig{
		Settings: settings,
		Logger:   logger,
	})

	scheduler := app.NewScheduler(app.SchedulerConfig{
		Gateway:   gateway,
		Quotes:    quotes,
		Overrides: overrides,
		Settings:  settings,
		Rotation:  rotation,
		Logger:    logger,
		DefaultSlot: domain.TimeOfDay{
			Hour:   cfg.Scheduler.DefaultHour,
			Minute: cfg.Scheduler.DefaultMinute,
		},
	})

	pruner := app.NewPruner(app.PrunerConfig{
		Gateway: gateway,
		Logger:  logger,
	})

	library := app.NewLibrary(app.LibraryConfig{
		Quotes:    quotes,
		Overrides: overrides,
		Settings:  settings,
		Logger:    logger,
	})

	seeder := app.NewSeeder(app.SeederConfig{
		Quotes:   quotes,
		Settings: settings,
		Logger:   logger,
		Dir:      cfg.Seeds.Dir,
		Files:    cfg.Seeds.Categories,
	})

	// 9. Run startup reconciliation
	startup(ctx, logger, gateway, scheduler, pruner)

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(library, seeder)
	scheduleHandler := handlers.NewScheduleHandler(handlers.ScheduleHandlerConfig{
		Scheduler: scheduler,
		Pruner:    pruner,
		Settings:  settings,
		DefaultSlot: domain.TimeOfDay{
			Hour:   cfg.Scheduler.DefaultHour,
			Minute: cfg.Scheduler.DefaultMinute,
		},
		MaxSlots: cfg.Scheduler.MaxSlots,
	})

	// 11. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:          logger,
		ServiceName:     cfg.App.Name,
		HealthHandler:   healthHandler,
		QuoteHandler:    quoteHandler,
		ScheduleHandler: scheduleHandler,
		Timeout:         http.DefaultRequestTimeout,
	})

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// startup requests notification authorization, prunes the delivered list and
// reconciles the schedule once. Failures degrade to "no notifications until
// the next foreground refresh" and never block the server from starting.
func startup(
	ctx context.Context,
	logger *slog.Logger,
	gateway ports.NotificationGateway,
	scheduler *app.Scheduler,
	pruner *app.Pruner,
) {
	granted, err := gateway.RequestAuthorization(ctx, domain.AuthorizationOptions{
		Alert: true,
		Sound: true,
		Badge: true,
	})
	if err != nil {
		logger.Warn("notification authorization request failed", slog.Any("error", err))
	} else if !granted {
		logger.Warn("notification authorization not granted")
	}

	if err := pruner.Prune(ctx); err != nil {
		logger.Warn("pruning delivered notifications failed", slog.Any("error", err))
	}

	if err := scheduler.Reconcile(ctx); err != nil {
		logger.Warn("startup reconcile failed", slog.Any("error", err))
	}
}

// waitForShutdown blocks until a shutdown signal is received or a server
// error occurs, then gracefully shuts down the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
