//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/logger"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("exercisetracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
		postgrescontainer.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pg)
	require.NoError(t, err)

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	client, err := NewClient(ctx, connStr, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	// повторный прогон миграций не должен падать
	require.NoError(t, ApplyMigrations(connStr, logger.Discard()))
	require.NoError(t, client.Ping(ctx))
	return client
}

func TestUserStorageRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	users := NewGormUserStorage(client.Gorm, logger.Discard())

	alice := &domain.User{Username: "alice"}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NotEmpty(t, alice.ID)

	bob := &domain.User{Username: "bob"}
	require.NoError(t, users.CreateUser(ctx, bob))

	err := users.CreateUser(ctx, &domain.User{Username: "alice"})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alice", list[0].Username)
	require.Equal(t, alice.ID, list[0].ID)
	require.Equal(t, "bob", list[1].Username)

	found, err := users.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "bob", found.Username)

	missing, err := users.GetUserByID(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)

	malformed, err := users.GetUserByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	require.Nil(t, malformed)
}

func TestExerciseStorageFiltersAndLimit(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	users := NewGormUserStorage(client.Gorm, logger.Discard())
	exercises := NewGormExerciseStorage(client.Gorm, logger.Discard())

	user := &domain.User{Username: "runner"}
	require.NoError(t, users.CreateUser(ctx, user))

	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, exercises.CreateExercise(ctx, &domain.Exercise{
			UserID:      user.ID,
			Description: "run",
			Duration:    float64(10 * (i + 1)),
			Date:        base.AddDate(0, 0, i),
		}))
	}

	all, err := exercises.ListExercisesByUser(ctx, user.ID, domain.LogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, float64(10), all[0].Duration)

	limited, err := exercises.ListExercisesByUser(ctx, user.ID, domain.LogFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)

	from := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)
	ranged, err := exercises.ListExercisesByUser(ctx, user.ID, domain.LogFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	require.Equal(t, float64(20), ranged[0].Duration)
	require.Equal(t, float64(40), ranged[2].Duration)

	other, err := exercises.ListExercisesByUser(ctx, uuid.NewString(), domain.LogFilter{})
	require.NoError(t, err)
	require.Empty(t, other)
}
