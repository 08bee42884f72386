package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/handler"
	"github.com/GoArmGo/ExerciseTracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 30 * time.Second

// Handler собирает HTTP-обработчик сервиса с собственным реестром метрик
func (a *App) Handler() (http.Handler, error) {
	if a.exerciseUseCase == nil || a.health == nil {
		return nil, errors.New("app: server dependencies are not configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(reg)

	return handler.NewRouter(handler.RouterConfig{
		APIPrefix:      a.Config.APIPrefix,
		RequestTimeout: a.Config.RequestTimeout,
		Exercises:      handler.NewExerciseHandler(a.exerciseUseCase, a.logger),
		Health:         a.health,
		Gatherer:       reg,
		Logger:         a.logger,
	}), nil
}

// RunServer запускает HTTP сервер и блокируется до отмены ctx
func (a *App) RunServer(ctx context.Context) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server started", "addr", serverAddr, "prefix", a.Config.APIPrefix)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, stopping http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("http server stopped")
	return nil
}
