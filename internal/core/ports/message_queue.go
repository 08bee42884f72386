package ports

import (
	"context"

	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
)

// ExerciseEventPublisher публикует события о добавленных упражнениях.
// Используется usecase'ом после успешного сохранения
type ExerciseEventPublisher interface {
	PublishExerciseLogged(ctx context.Context, payload payloads.ExerciseLoggedPayload) error
}

// ExerciseEventConsumer определяет методы для потребления событий об упражнениях,
// используется воркером архивации
type ExerciseEventConsumer interface {
	// StartConsumingExerciseLogged начинает прослушивание очереди,
	// handler вызывается для каждого полученного сообщения
	StartConsumingExerciseLogged(ctx context.Context, handler func(context.Context, payloads.ExerciseLoggedPayload) error) error
}
