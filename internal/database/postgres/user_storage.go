package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("username already taken", "username", user.Username)
			return domain.ErrUsernameTaken
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении пользователя с GORM: %w", result.Error)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListUsers возвращает всех пользователей (только id и username) в порядке создания
func (s *GormUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	var users []domain.User
	result := s.db.WithContext(ctx).
		Select("id", "username").
		Order("created_at ASC").
		Order("id ASC").
		Find(&users)
	if result.Error != nil {
		s.logger.Error("failed to list users", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка пользователей с GORM: %w", result.Error)
	}

	s.logger.Info("listed users successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// GetUserByID получает пользователя по ID. Некорректный UUID трактуется как отсутствие пользователя
func (s *GormUserStorage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("malformed user id", "user_id", id)
		return nil, nil
	}

	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("user not found by id", "user_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID с GORM: %w", result.Error)
	}
	return &user, nil
}
