package payloads

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload — сообщение корректно по JSON, но не пригодно к обработке.
// Такие сообщения не возвращаются в очередь
var ErrInvalidPayload = errors.New("invalid payload")

// ExerciseLoggedPayload — событие о добавленном упражнении,
// публикуется в RabbitMQ и архивируется воркером.
type ExerciseLoggedPayload struct {
	ExerciseID  string    `json:"exercise_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
	LoggedAt    time.Time `json:"logged_at"`
}

// Validate проверяет обязательные идентификаторы события
func (p ExerciseLoggedPayload) Validate() error {
	if p.ExerciseID == "" || p.UserID == "" {
		return fmt.Errorf("%w: exercise_id and user_id are required", ErrInvalidPayload)
	}
	return nil
}
