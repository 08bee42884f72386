package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoArmGo/ExerciseTracker/internal/app"
	"github.com/GoArmGo/ExerciseTracker/internal/config"
	"github.com/GoArmGo/ExerciseTracker/internal/database/mongo"
	"github.com/GoArmGo/ExerciseTracker/internal/database/postgres"
	"github.com/GoArmGo/ExerciseTracker/internal/di"
	"github.com/GoArmGo/ExerciseTracker/internal/logger"
)

// cliState — общие для подкоманд конфиг и логгер
type cliState struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliState{}

	root := &cobra.Command{
		Use:           "exercisetracker",
		Short:         "Exercise tracker API: users, exercise log and archive worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// bootstrap-логгер нужен только до загрузки конфигурации
			bootstrapLogger := slog.New(
				slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			)

			cfg, err := config.LoadConfig()
			if err != nil {
				bootstrapLogger.Error("failed to load config", "error", err)
				return err
			}
			if err := validateFor(cmd.Name(), cfg); err != nil {
				bootstrapLogger.Error("invalid config", "command", cmd.Name(), "error", err)
				return err
			}
			rt.cfg = cfg
			rt.logger = logger.NewSlog(logger.SlogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})
			rt.logger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat, "command", cmd.Name())
			return nil
		},
	}

	root.AddCommand(newServeCmd(rt), newWorkerCmd(rt), newMigrateCmd(rt))
	return root
}

func newServeCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := di.BuildServer(ctx, rt.cfg, rt.logger)
			if err != nil {
				rt.logger.Error("failed to build app", "error", err)
				return err
			}
			return run(application, rt.logger, func() error { return application.RunServer(ctx) })
		},
	}
}

func newWorkerCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume exercise-logged events and archive them to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := di.BuildWorker(ctx, rt.cfg, rt.logger)
			if err != nil {
				rt.logger.Error("failed to build worker", "error", err)
				return err
			}
			return run(application, rt.logger, func() error { return application.RunWorker(ctx) })
		},
	}
}

func newMigrateCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations (postgres) or create indexes (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch rt.cfg.StorageBackend {
			case config.BackendPostgres:
				return postgres.ApplyMigrations(rt.cfg.DatabaseURL, rt.logger)
			case config.BackendMongo:
				// индексы создаются при подключении
				client, err := mongo.NewClient(ctx, rt.cfg.Mongo.URL, rt.cfg.Mongo.Database, rt.logger)
				if err != nil {
					return err
				}
				return client.Close()
			default:
				rt.logger.Info("nothing to migrate", "storage", rt.cfg.StorageBackend)
				return nil
			}
		},
	}
}

// validateFor проверяет конфигурацию для подкоманды: воркер не ходит в хранилище
func validateFor(command string, cfg *config.Config) error {
	if command == "worker" {
		return cfg.ValidateWorker()
	}
	return cfg.Validate()
}

func run(application *app.App, logger *slog.Logger, fn func() error) error {
	runErr := fn()

	logger.Info("shutting down")
	if err := application.Shutdown(); err != nil {
		logger.Error("shutdown finished with errors", "error", err)
	}

	if runErr != nil {
		logger.Error("application run failed", "error", runErr)
		return fmt.Errorf("run: %w", runErr)
	}
	logger.Info("application stopped gracefully")
	return nil
}
