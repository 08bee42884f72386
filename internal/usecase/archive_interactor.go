package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
	"github.com/GoArmGo/ExerciseTracker/internal/metrics"
)

type archiveUseCase struct {
	fileStorage ports.FileStorage
	logger      *slog.Logger
}

// NewArchiveUseCase создает usecase архивации событий в S3/MinIO
func NewArchiveUseCase(fileStorage ports.FileStorage, logger *slog.Logger) ArchiveUseCase {
	return &archiveUseCase{fileStorage: fileStorage, logger: logger}
}

// ArchiveKey возвращает ключ объекта для события: exercises/<userId>/<exerciseId>.json
func ArchiveKey(payload payloads.ExerciseLoggedPayload) string {
	return fmt.Sprintf("exercises/%s/%s.json", payload.UserID, payload.ExerciseID)
}

func (uc *archiveUseCase) ArchiveExercise(ctx context.Context, payload payloads.ExerciseLoggedPayload) error {
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("usecase: событие не может быть архивировано: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("usecase: ошибка сериализации события %s: %w", payload.ExerciseID, err)
	}

	key := ArchiveKey(payload)
	url, err := uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return fmt.Errorf("usecase: ошибка загрузки архива %s: %w", key, err)
	}

	metrics.ExercisesArchivedTotal.Inc()
	uc.logger.Info("usecase: exercise archived", "exercise_id", payload.ExerciseID, "url", url)
	return nil
}
