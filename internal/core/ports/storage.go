package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser сохраняет пользователя и проставляет ему ID.
	// При занятом username возвращает domain.ErrUsernameTaken
	CreateUser(ctx context.Context, user *domain.User) error
	// ListUsers возвращает всех пользователей в порядке создания
	ListUsers(ctx context.Context) ([]domain.User, error)
	// GetUserByID возвращает nil, nil если пользователя нет (или ID некорректен)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ExerciseStorage определяет методы для взаимодействия с хранилищем упражнений
type ExerciseStorage interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) error
	// ListExercisesByUser возвращает журнал пользователя, упорядоченный по дате
	ListExercisesByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.LogEntry, error)
}

// HealthChecker проверяет доступность хранилища
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}
