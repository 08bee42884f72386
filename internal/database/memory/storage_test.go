package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
)

func TestStorageUsers(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	alice := &domain.User{Username: "alice"}
	require.NoError(t, s.CreateUser(ctx, alice))
	require.NoError(t, s.CreateUser(ctx, &domain.User{Username: "bob"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &domain.User{Username: "alice"}), domain.ErrUsernameTaken)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	found, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	missing, err := s.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorageExercisesOrderedAndFiltered(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, time.June, d, 12, 0, 0, 0, time.UTC) }
	for _, d := range []int{5, 1, 3, 2, 4} {
		require.NoError(t, s.CreateExercise(ctx, &domain.Exercise{UserID: "u1", Description: "lift", Duration: float64(d), Date: day(d)}))
	}
	require.NoError(t, s.CreateExercise(ctx, &domain.Exercise{UserID: "u2", Description: "row", Duration: 99, Date: day(1)}))

	all, err := s.ListExercisesByUser(ctx, "u1", domain.LogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, e := range all {
		assert.Equal(t, float64(i+1), e.Duration)
	}

	limited, err := s.ListExercisesByUser(ctx, "u1", domain.LogFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	from, to := day(2), day(3)
	ranged, err := s.ListExercisesByUser(ctx, "u1", domain.LogFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, float64(2), ranged[0].Duration)
	assert.Equal(t, float64(3), ranged[1].Duration)

	none, err := s.ListExercisesByUser(ctx, "u3", domain.LogFilter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
