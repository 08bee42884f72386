package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
)

// RunWorker запускает потребителя RabbitMQ, архивирующего события в MinIO,
// и блокируется до отмены ctx
func (a *App) RunWorker(ctx context.Context) error {
	if a.consumer == nil || a.archiveUseCase == nil {
		return errors.New("app: worker dependencies are not configured")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ExerciseLoggedPayload) error {
		a.logger.Info("worker: archiving exercise",
			"exercise_id", payload.ExerciseID,
			"user_id", payload.UserID,
		)
		if err := a.archiveUseCase.ArchiveExercise(ctx, payload); err != nil {
			a.logger.Error("worker: failed to archive exercise", "exercise_id", payload.ExerciseID, "error", err)
			return err
		}
		return nil
	}

	if err := a.consumer.StartConsumingExerciseLogged(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	a.logger.Info("worker started, waiting for messages")
	<-ctx.Done()
	a.logger.Info("worker: shutdown signal received")
	return nil
}
