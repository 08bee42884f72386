package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ExerciseTracker/internal/adapter/storage/minio"
	"github.com/GoArmGo/ExerciseTracker/internal/app"
	"github.com/GoArmGo/ExerciseTracker/internal/config"
	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
	"github.com/GoArmGo/ExerciseTracker/internal/database/memory"
	"github.com/GoArmGo/ExerciseTracker/internal/database/mongo"
	"github.com/GoArmGo/ExerciseTracker/internal/database/postgres"
	"github.com/GoArmGo/ExerciseTracker/internal/rabbitmq"
	"github.com/GoArmGo/ExerciseTracker/internal/usecase"
)

// stores — хранилища выбранного бэкенда
type stores struct {
	users     ports.UserStorage
	exercises ports.ExerciseStorage
	health    ports.HealthChecker
	closer    *app.Closer
}

func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dbClient, err := postgres.NewClient(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     postgres.NewGormUserStorage(dbClient.Gorm, logger),
			exercises: postgres.NewGormExerciseStorage(dbClient.Gorm, logger),
			health:    dbClient,
			closer:    &app.Closer{Name: "postgres", Close: dbClient.Close},
		}, nil

	case config.BackendMongo:
		mongoClient, err := mongo.NewClient(ctx, cfg.Mongo.URL, cfg.Mongo.Database, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     mongo.NewUserStorage(mongoClient.DB, logger),
			exercises: mongo.NewExerciseStorage(mongoClient.DB, logger),
			health:    mongoClient,
			closer:    &app.Closer{Name: "mongo", Close: mongoClient.Close},
		}, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := memory.NewStorage()
		return &stores{users: mem, exercises: mem, health: mem}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// BuildServer инициализирует зависимости HTTP-сервера и возвращает готовый объект App.
// RabbitMQ подключается только если задан RABBITMQ_URL
func BuildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var closers []app.Closer
	if st.closer != nil {
		closers = append(closers, *st.closer)
	}

	var publisher ports.ExerciseEventPublisher
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, logger)
		if err != nil {
			closeAll(closers, logger)
			return nil, err
		}
		publisher = rabbitMQClient
		closers = append(closers, app.Closer{Name: "rabbitmq", Close: func() error {
			rabbitMQClient.Close()
			return nil
		}})
	} else {
		logger.Info("RABBITMQ_URL not set, exercise events are not published")
	}

	exerciseUseCase := usecase.NewExerciseUseCase(st.users, st.exercises, publisher, logger)

	logger.Info("container: server dependencies initialized", "storage", cfg.StorageBackend)
	return app.NewApp(app.Options{
		Config:          cfg,
		Logger:          logger,
		ExerciseUseCase: exerciseUseCase,
		Health:          st.health,
		Closers:         closers,
	}), nil
}

// BuildWorker инициализирует зависимости воркера архивации: RabbitMQ и MinIO
func BuildWorker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, error) {
	if err := cfg.ValidateWorker(); err != nil {
		return nil, err
	}

	fileStorage, err := minio.NewMinioClient(ctx, minio.Config{
		Endpoint:        cfg.Minio.Endpoint,
		AccessKeyID:     cfg.Minio.AccessKeyID,
		SecretAccessKey: cfg.Minio.SecretAccessKey,
		UseSSL:          cfg.Minio.UseSSL,
		BucketName:      cfg.Minio.BucketName,
		Region:          cfg.Minio.Region,
	}, logger)
	if err != nil {
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("container: worker dependencies initialized", "bucket", cfg.Minio.BucketName)
	return app.NewApp(app.Options{
		Config:         cfg,
		Logger:         logger,
		ArchiveUseCase: usecase.NewArchiveUseCase(fileStorage, logger),
		Consumer:       rabbitMQClient,
		Closers: []app.Closer{{Name: "rabbitmq", Close: func() error {
			rabbitMQClient.Close()
			return nil
		}}},
	}), nil
}

func closeAll(closers []app.Closer, logger *slog.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Error("failed to close resource", "resource", closers[i].Name, "error", err)
		}
	}
}
