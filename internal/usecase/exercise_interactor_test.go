package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/logger"
)

var fixedNow = time.Date(2024, time.May, 6, 14, 30, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*exerciseUseCase, *fakeUserStorage, *fakeExerciseStorage, *fakePublisher) {
	t.Helper()
	users := &fakeUserStorage{}
	exercises := &fakeExerciseStorage{}
	publisher := &fakePublisher{}
	uc := NewExerciseUseCase(users, exercises, publisher, logger.Discard()).(*exerciseUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc, users, exercises, publisher
}

func TestCreateUser(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)

	_, err = uc.CreateUser(ctx, "alice")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = uc.CreateUser(ctx, "   ")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestListUsers(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	_, err = uc.CreateUser(ctx, "alice")
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, "bob")
	require.NoError(t, err)

	users, err = uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestAddExerciseDefaultsDateToNow(t *testing.T) {
	uc, _, exercises, publisher := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)

	added, err := uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "run", Duration: "30"})
	require.NoError(t, err)

	assert.Equal(t, "runner", added.User.Username)
	assert.Equal(t, float64(30), added.Exercise.Duration)
	assert.True(t, fixedNow.Equal(added.Exercise.Date))
	assert.Equal(t, "Mon, 06 May 2024", domain.FormatDate(added.Exercise.Date))
	require.Len(t, exercises.exercises, 1)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, added.Exercise.ID, publisher.published[0].ExerciseID)
	assert.Equal(t, "runner", publisher.published[0].Username)
}

func TestAddExerciseValidation(t *testing.T) {
	uc, _, exercises, publisher := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   AddExerciseInput
		want error
	}{
		{name: "missing user", in: AddExerciseInput{Description: "run", Duration: "30"}, want: ErrMissingFields},
		{name: "missing description", in: AddExerciseInput{UserID: user.ID, Duration: "30"}, want: ErrMissingFields},
		{name: "missing duration", in: AddExerciseInput{UserID: user.ID, Description: "run"}, want: ErrMissingFields},
		{name: "missing fields with bad date", in: AddExerciseInput{Date: "2024-02-30"}, want: ErrMissingFields},
		{name: "non numeric duration", in: AddExerciseInput{UserID: user.ID, Description: "run", Duration: "half hour"}, want: ErrInvalidDuration},
		{name: "negative duration", in: AddExerciseInput{UserID: user.ID, Description: "run", Duration: "-5"}, want: ErrInvalidDuration},
		{name: "impossible date", in: AddExerciseInput{UserID: user.ID, Description: "run", Duration: "30", Date: "2024-02-30"}, want: ErrInvalidDate},
		{name: "unknown user", in: AddExerciseInput{UserID: "user-404", Description: "run", Duration: "30"}, want: ErrInvalidUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddExercise(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, exercises.exercises)
	assert.Empty(t, publisher.published)
}

func TestAddExerciseWithExplicitDate(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "swimmer")
	require.NoError(t, err)

	added, err := uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "swim", Duration: "45.5", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 45.5, added.Exercise.Duration)
	assert.Equal(t, "Mon, 01 Jan 2024", domain.FormatDate(added.Exercise.Date))
}

func TestAddExerciseStorageFailure(t *testing.T) {
	uc, _, exercises, publisher := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)

	exercises.createErr = errBoom
	_, err = uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "run", Duration: "30"})
	assert.ErrorIs(t, err, ErrSaveExercise)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, publisher.published)
}

func TestAddExercisePublishFailureDoesNotFailRequest(t *testing.T) {
	uc, _, exercises, publisher := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)

	publisher.err = errBoom
	_, err = uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "run", Duration: "30"})
	require.NoError(t, err)
	assert.Len(t, exercises.exercises, 1)
}

func TestAddExerciseWithoutPublisher(t *testing.T) {
	users := &fakeUserStorage{}
	uc := NewExerciseUseCase(users, &fakeExerciseStorage{}, nil, logger.Discard())
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)
	_, err = uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "run", Duration: "30"})
	require.NoError(t, err)
}

func TestGetLogLimitAndRange(t *testing.T) {
	uc, _, exercises, _ := newTestUseCase(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)
	for i, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
		_, err := uc.AddExercise(ctx, AddExerciseInput{UserID: user.ID, Description: "run", Duration: strconv.Itoa(i + 1), Date: day})
		require.NoError(t, err)
	}

	log, err := uc.GetLog(ctx, LogQuery{UserID: user.ID, Limit: "2"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, log.User.ID)
	assert.Equal(t, 2, log.Count)
	assert.Len(t, log.Entries, 2)

	log, err = uc.GetLog(ctx, LogQuery{UserID: user.ID, From: "2024-01-02", To: "2024-01-03"})
	require.NoError(t, err)
	assert.Equal(t, 2, log.Count)
	assert.Equal(t, float64(2), log.Entries[0].Duration)
	assert.Equal(t, float64(3), log.Entries[1].Duration)

	for _, limit := range []string{"", "abc", "0", "-3"} {
		log, err = uc.GetLog(ctx, LogQuery{UserID: user.ID, Limit: limit})
		require.NoError(t, err)
		assert.Equal(t, 5, log.Count, "limit %q", limit)
		assert.Equal(t, 0, exercises.lastLimit)
	}
}

func TestGetLogErrors(t *testing.T) {
	uc, users, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.GetLog(ctx, LogQuery{})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = uc.GetLog(ctx, LogQuery{UserID: "user-404"})
	assert.ErrorIs(t, err, ErrInvalidUser)

	user, err := uc.CreateUser(ctx, "runner")
	require.NoError(t, err)

	_, err = uc.GetLog(ctx, LogQuery{UserID: user.ID, From: "2024-02-30"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	log, err := uc.GetLog(ctx, LogQuery{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, log.Count)
	assert.NotNil(t, log.Entries)

	users.getErr = errBoom
	_, err = uc.GetLog(ctx, LogQuery{UserID: user.ID})
	assert.ErrorIs(t, err, errBoom)
}
