package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
	"github.com/GoArmGo/ExerciseTracker/internal/metrics"
)

// exerciseUseCase implements ExerciseUseCase
type exerciseUseCase struct {
	userStorage     ports.UserStorage
	exerciseStorage ports.ExerciseStorage
	publisher       ports.ExerciseEventPublisher
	logger          *slog.Logger
	now             func() time.Time
}

// NewExerciseUseCase создает новый экземпляр ExerciseUseCase.
// publisher может быть nil — тогда события не публикуются
func NewExerciseUseCase(
	userStorage ports.UserStorage,
	exerciseStorage ports.ExerciseStorage,
	publisher ports.ExerciseEventPublisher,
	logger *slog.Logger,
) ExerciseUseCase {
	return &exerciseUseCase{
		userStorage:     userStorage,
		exerciseStorage: exerciseStorage,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *exerciseUseCase) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		metrics.RejectedRequestsTotal.WithLabelValues("username_required").Inc()
		return nil, ErrUsernameRequired
	}

	user := &domain.User{Username: username}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			metrics.RejectedRequestsTotal.WithLabelValues("username_taken").Inc()
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя %q: %w", username, err)
	}

	metrics.UsersCreatedTotal.Inc()
	uc.logger.Info("usecase: user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (uc *exerciseUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userStorage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка пользователей: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (uc *exerciseUseCase) AddExercise(ctx context.Context, in AddExerciseInput) (*AddedExercise, error) {
	userID := strings.TrimSpace(in.UserID)
	description := strings.TrimSpace(in.Description)
	rawDuration := strings.TrimSpace(in.Duration)

	if userID == "" || description == "" || rawDuration == "" {
		metrics.RejectedRequestsTotal.WithLabelValues("missing_fields").Inc()
		return nil, ErrMissingFields
	}

	duration, err := parseDuration(rawDuration)
	if err != nil {
		metrics.RejectedRequestsTotal.WithLabelValues("invalid_duration").Inc()
		return nil, ErrInvalidDuration
	}

	date := uc.now().UTC()
	if strings.TrimSpace(in.Date) != "" {
		date, err = domain.ParseDate(in.Date)
		if err != nil {
			metrics.RejectedRequestsTotal.WithLabelValues("invalid_date").Inc()
			return nil, ErrInvalidDate
		}
	}

	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке пользователя %s: %w", userID, err)
	}
	if user == nil {
		metrics.RejectedRequestsTotal.WithLabelValues("invalid_user").Inc()
		return nil, ErrInvalidUser
	}

	exercise := domain.Exercise{
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	if err := uc.exerciseStorage.CreateExercise(ctx, &exercise); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveExercise, err)
	}
	metrics.ExercisesLoggedTotal.Inc()

	uc.publishLogged(ctx, *user, exercise)

	uc.logger.Info("usecase: exercise added",
		"user_id", user.ID,
		"exercise_id", exercise.ID,
		"date", exercise.Date,
	)
	return &AddedExercise{User: *user, Exercise: exercise}, nil
}

func (uc *exerciseUseCase) publishLogged(ctx context.Context, user domain.User, exercise domain.Exercise) {
	if uc.publisher == nil {
		return
	}

	payload := payloads.ExerciseLoggedPayload{
		ExerciseID:  exercise.ID,
		UserID:      user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		LoggedAt:    uc.now().UTC(),
	}
	if err := uc.publisher.PublishExerciseLogged(ctx, payload); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		uc.logger.Error("usecase: failed to publish exercise logged event",
			"exercise_id", exercise.ID,
			"error", err,
		)
	}
}

func (uc *exerciseUseCase) GetLog(ctx context.Context, q LogQuery) (*ExerciseLog, error) {
	userID := strings.TrimSpace(q.UserID)
	if userID == "" {
		metrics.RejectedRequestsTotal.WithLabelValues("invalid_user").Inc()
		return nil, ErrInvalidUser
	}

	filter := domain.LogFilter{Limit: parseLimit(q.Limit)}
	for _, bound := range []struct {
		raw string
		dst **time.Time
	}{
		{q.From, &filter.From},
		{q.To, &filter.To},
	} {
		if strings.TrimSpace(bound.raw) == "" {
			continue
		}
		t, err := domain.ParseDate(bound.raw)
		if err != nil {
			metrics.RejectedRequestsTotal.WithLabelValues("invalid_date").Inc()
			return nil, ErrInvalidDate
		}
		*bound.dst = &t
	}

	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке пользователя %s: %w", userID, err)
	}
	if user == nil {
		metrics.RejectedRequestsTotal.WithLabelValues("invalid_user").Inc()
		return nil, ErrInvalidUser
	}

	entries, err := uc.exerciseStorage.ListExercisesByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении журнала пользователя %s: %w", user.ID, err)
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}

	return &ExerciseLog{User: *user, Count: len(entries), Entries: entries}, nil
}

func parseDuration(raw string) (float64, error) {
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("duration out of range: %v", d)
	}
	return d, nil
}

// parseLimit возвращает 0 (без ограничения) для пустого, нечислового или неположительного лимита
func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
