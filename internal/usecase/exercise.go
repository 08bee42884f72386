package usecase

import (
	"context"
	"errors"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = domain.ErrUsernameTaken
	ErrMissingFields    = errors.New("userId, description and duration are required")
	ErrInvalidDuration  = errors.New("duration must be a positive number")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidUser      = errors.New("invalid user id")
	ErrSaveExercise     = errors.New("failed to save exercise")
	ErrInvalidPayload   = payloads.ErrInvalidPayload
)

// AddExerciseInput — сырые поля формы добавления упражнения
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string // пусто — текущая дата
}

// AddedExercise — результат добавления: владелец и сохранённое упражнение
type AddedExercise struct {
	User     domain.User
	Exercise domain.Exercise
}

// LogQuery — сырые параметры запроса журнала
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// ExerciseLog — журнал упражнений пользователя
type ExerciseLog struct {
	User    domain.User
	Count   int
	Entries []domain.LogEntry
}

// ExerciseUseCase определяет бизнес-логику трекера упражнений
type ExerciseUseCase interface {
	// CreateUser создаёт пользователя с уникальным username
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	// ListUsers возвращает всех пользователей (id и username)
	ListUsers(ctx context.Context) ([]domain.User, error)

	// AddExercise валидирует ввод, проверяет пользователя и сохраняет упражнение.
	// После сохранения публикует событие; ошибка публикации запрос не ломает
	AddExercise(ctx context.Context, in AddExerciseInput) (*AddedExercise, error)

	// GetLog возвращает журнал пользователя с учётом from/to/limit
	GetLog(ctx context.Context, q LogQuery) (*ExerciseLog, error)
}

// ArchiveUseCase сохраняет события о добавленных упражнениях в объектное хранилище
type ArchiveUseCase interface {
	ArchiveExercise(ctx context.Context, payload payloads.ExerciseLoggedPayload) error
}
