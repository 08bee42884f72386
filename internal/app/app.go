package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ExerciseTracker/internal/config"
	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
	"github.com/GoArmGo/ExerciseTracker/internal/usecase"
)

// Closer — ресурс, который нужно закрыть при завершении (БД, RabbitMQ)
type Closer struct {
	Name  string
	Close func() error
}

// App хранит собранные зависимости для режимов server и worker
type App struct {
	Config *config.Config
	logger *slog.Logger

	exerciseUseCase usecase.ExerciseUseCase
	archiveUseCase  usecase.ArchiveUseCase
	health          ports.HealthChecker
	consumer        ports.ExerciseEventConsumer

	closers []Closer
}

// Options — зависимости App. Для сервера нужны ExerciseUseCase и Health,
// для воркера — ArchiveUseCase и Consumer
type Options struct {
	Config          *config.Config
	Logger          *slog.Logger
	ExerciseUseCase usecase.ExerciseUseCase
	ArchiveUseCase  usecase.ArchiveUseCase
	Health          ports.HealthChecker
	Consumer        ports.ExerciseEventConsumer
	Closers         []Closer
}

func NewApp(opts Options) *App {
	return &App{
		Config:          opts.Config,
		logger:          opts.Logger,
		exerciseUseCase: opts.ExerciseUseCase,
		archiveUseCase:  opts.ArchiveUseCase,
		health:          opts.Health,
		consumer:        opts.Consumer,
		closers:         opts.Closers,
	}
}

// Shutdown закрывает все ресурсы приложения в обратном порядке
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.Close(); err != nil {
			a.logger.Error("failed to close resource", "resource", c.Name, "error", err)
			errs = append(errs, fmt.Errorf("ошибка закрытия %s: %w", c.Name, err))
			continue
		}
		a.logger.Info("resource closed", "resource", c.Name)
	}
	a.closers = nil
	return errors.Join(errs...)
}
