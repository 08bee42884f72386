package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"
)

type fakeUserStorage struct {
	mu     sync.Mutex
	users  []domain.User
	getErr error
}

func (f *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserStorage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type fakeExerciseStorage struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	createErr error
	lastLimit int
}

func (f *fakeExerciseStorage) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	exercise.ID = fmt.Sprintf("exercise-%d", len(f.exercises)+1)
	f.exercises = append(f.exercises, *exercise)
	return nil
}

func (f *fakeExerciseStorage) ListExercisesByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = filter.Limit

	var matched []domain.Exercise
	for _, e := range f.exercises {
		if e.UserID != userID {
			continue
		}
		if lb := filter.LowerBound(); lb != nil && e.Date.Before(*lb) {
			continue
		}
		if ub := filter.UpperBound(); ub != nil && !e.Date.Before(*ub) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	var entries []domain.LogEntry
	for _, e := range matched {
		entries = append(entries, domain.LogEntry{Description: e.Description, Duration: e.Duration, Date: e.Date})
	}
	return entries, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []payloads.ExerciseLoggedPayload
	err       error
}

func (f *fakePublisher) PublishExerciseLogged(ctx context.Context, payload payloads.ExerciseLoggedPayload) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return nil
}

type fakeFileStorage struct {
	objects     map[string][]byte
	contentType string
	err         error
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = body
	f.contentType = contentType
	return "http://minio.local/archive/" + key, nil
}

var errBoom = errors.New("boom")
