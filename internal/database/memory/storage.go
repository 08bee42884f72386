// Package memory хранит пользователей и упражнения в памяти процесса
// (локальная разработка и тесты HTTP-слоя).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/google/uuid"
)

// Storage реализует ports.UserStorage и ports.ExerciseStorage
type Storage struct {
	mu        sync.RWMutex
	users     []domain.User
	byID      map[string]int
	byName    map[string]struct{}
	exercises []domain.Exercise
}

func NewStorage() *Storage {
	return &Storage{
		byID:   make(map[string]int),
		byName: make(map[string]struct{}),
	}
}

func (s *Storage) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[user.Username]; taken {
		return domain.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	s.byID[user.ID] = len(s.users)
	s.byName[user.Username] = struct{}{}
	s.users = append(s.users, *user)
	return nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	user := s.users[idx]
	return &user, nil
}

func (s *Storage) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
	s.exercises = append(s.exercises, *exercise)
	return nil
}

func (s *Storage) ListExercisesByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from, to := filter.LowerBound(), filter.UpperBound()

	var matched []domain.Exercise
	for _, e := range s.exercises {
		if e.UserID != userID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && !e.Date.Before(*to) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	entries := make([]domain.LogEntry, 0, len(matched))
	for _, e := range matched {
		entries = append(entries, domain.LogEntry{Description: e.Description, Duration: e.Duration, Date: e.Date})
	}
	return entries, nil
}

// Ping всегда успешен
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}
