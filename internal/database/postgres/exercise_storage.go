package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExerciseStorage реализует ports.ExerciseStorage с использованием GORM
type GormExerciseStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormExerciseStorage(db *gorm.DB, logger *slog.Logger) *GormExerciseStorage {
	return &GormExerciseStorage{db: db, logger: logger}
}

// CreateExercise сохраняет упражнение в базе данных
func (s *GormExerciseStorage) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	start := time.Now()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}

	result := s.db.WithContext(ctx).Create(exercise)
	if result.Error != nil {
		s.logger.Error("failed to save exercise", "user_id", exercise.UserID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении упражнения с помощью GORM: %w", result.Error)
	}

	s.logger.Info("exercise saved successfully",
		"id", exercise.ID,
		"user_id", exercise.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListExercisesByUser получает журнал упражнений пользователя с фильтром по датам и лимитом
func (s *GormExerciseStorage) ListExercisesByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.LogEntry, error) {
	start := time.Now()

	q := s.db.WithContext(ctx).
		Model(&domain.Exercise{}).
		Select("description", "duration", "date").
		Where("user_id = ?", userID)

	if from := filter.LowerBound(); from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to := filter.UpperBound(); to != nil {
		q = q.Where("date < ?", *to)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	entries := []domain.LogEntry{}
	if err := q.Order("date ASC").Order("created_at ASC").Find(&entries).Error; err != nil {
		s.logger.Error("failed to list exercises", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении журнала упражнений с помощью GORM: %w", err)
	}

	s.logger.Info("listed exercises successfully",
		"user_id", userID,
		"limit", filter.Limit,
		"count", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return entries, nil
}
