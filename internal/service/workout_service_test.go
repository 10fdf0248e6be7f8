package service

import (
	"fmt"
	"testing"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger keeps completions in memory and applies the same
// one-per-(user, date) rule as the database constraint.
type fakeLedger struct {
	completions map[string]*model.Completion
	users       map[uint]*model.User
	recordErr   error
}

func newFakeLedger(userIDs ...uint) *fakeLedger {
	ledger := &fakeLedger{
		completions: make(map[string]*model.Completion),
		users:       make(map[uint]*model.User),
	}
	for _, id := range userIDs {
		user := &model.User{}
		user.ID = id
		ledger.users[id] = user
	}
	return ledger
}

func ledgerKey(userID uint, date time.Time) string {
	return fmt.Sprintf("%d/%s", userID, date.Format(util.DateFormat))
}

func (f *fakeLedger) FindByUserAndDate(userID uint, date time.Time) (*model.Completion, error) {
	return f.completions[ledgerKey(userID, date)], nil
}

func (f *fakeLedger) Record(userID, exerciseID uint, date time.Time, points int) (*model.User, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}

	key := ledgerKey(userID, date)
	if _, exists := f.completions[key]; exists {
		return nil, util.ErrAlreadyCompletedToday
	}

	f.completions[key] = &model.Completion{
		UserID:        userID,
		ExerciseID:    exerciseID,
		Date:          date,
		PointsAwarded: points,
	}

	user := f.users[userID]
	user.Points += points
	user.TotalExercises++
	return user, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time          { return c.now }
func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newWorkoutFixture(t *testing.T, catalogSize int) (*WorkoutService, *fakeLedger, *fixedClock) {
	t.Helper()

	schedule := NewScheduleService(&fakeCatalog{exercises: catalogOf(catalogSize)}, anchor)
	ledger := newFakeLedger(1)
	svc := NewWorkoutService(schedule, ledger, 25, 30)

	clock := &fixedClock{now: time.Date(2025, time.January, 10, 8, 0, 0, 0, time.Local)}
	svc.SetClock(clock.Now)

	return svc, ledger, clock
}

func TestWorkoutGateLifecycle(t *testing.T) {
	svc, _, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	// nothing started yet
	assert.Equal(t, SessionNotStarted, svc.Status(1).State)

	status, err := svc.Start(1, day)
	require.NoError(t, err)
	assert.Equal(t, SessionStarted, status.State)
	assert.Equal(t, 30, status.RemainingSeconds)

	clock.Advance(12 * time.Second)
	status = svc.Status(1)
	assert.Equal(t, SessionStarted, status.State)
	assert.Equal(t, 18, status.RemainingSeconds)

	clock.Advance(18 * time.Second)
	status = svc.Status(1)
	assert.Equal(t, SessionEligible, status.State)
	assert.Equal(t, 0, status.RemainingSeconds)
}

func TestCompleteBeforeEligibleIsRejected(t *testing.T) {
	svc, ledger, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Complete(1, day)
	assert.ErrorIs(t, err, util.ErrNotEligible, "complete without start")

	_, err = svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(29 * time.Second)

	_, err = svc.Complete(1, day)
	assert.ErrorIs(t, err, util.ErrNotEligible, "complete one second early")
	assert.Empty(t, ledger.completions)
}

func TestCompleteCreditsRewardOnce(t *testing.T) {
	svc, ledger, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	result, err := svc.Complete(1, day)
	require.NoError(t, err)
	assert.Equal(t, 25, result.NewPoints)
	assert.Equal(t, 1, result.NewTotal)

	// completing consumed the session
	assert.Equal(t, SessionNotStarted, svc.Status(1).State)

	// a second run the same day reaches the gate but the ledger refuses it
	_, err = svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	_, err = svc.Complete(1, day)
	assert.ErrorIs(t, err, util.ErrAlreadyCompletedToday)
	assert.Equal(t, 25, ledger.users[1].Points, "points stay at one reward")
	assert.Equal(t, 1, ledger.users[1].TotalExercises)
}

func TestRestartResetsCountdown(t *testing.T) {
	svc, _, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(25 * time.Second)

	status, err := svc.Start(1, day)
	require.NoError(t, err)
	assert.Equal(t, 30, status.RemainingSeconds, "restart starts the wait over")
}

func TestAbandonLeavesNoTrace(t *testing.T) {
	svc, ledger, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	svc.Abandon(1)

	assert.Equal(t, SessionNotStarted, svc.Status(1).State)
	assert.Empty(t, ledger.completions)
	assert.Zero(t, ledger.users[1].Points)
}

func TestExerciseDurationOverridesDefault(t *testing.T) {
	catalog := catalogOf(1)
	catalog[0].DurationSeconds = 45

	schedule := NewScheduleService(&fakeCatalog{exercises: catalog}, anchor)
	svc := NewWorkoutService(schedule, newFakeLedger(1), 25, 30)
	clock := &fixedClock{now: time.Date(2025, time.January, 10, 8, 0, 0, 0, time.Local)}
	svc.SetClock(clock.Now)

	status, err := svc.Start(1, localDate(2025, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, 45, status.RemainingSeconds)

	clock.Advance(30 * time.Second)
	assert.Equal(t, SessionStarted, svc.Status(1).State)

	clock.Advance(15 * time.Second)
	assert.Equal(t, SessionEligible, svc.Status(1).State)
}

func TestTodayExerciseReportsCompletion(t *testing.T) {
	svc, _, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	exercise, completed, err := svc.TodayExercise(1, day)
	require.NoError(t, err)
	require.NotNil(t, exercise)
	assert.False(t, completed)

	_, err = svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	_, err = svc.Complete(1, day)
	require.NoError(t, err)

	sameExercise, completed, err := svc.TodayExercise(1, day)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, exercise.ID, sameExercise.ID)

	// tomorrow starts fresh with the next catalog entry
	tomorrow := day.AddDate(0, 0, 1)
	next, completed, err := svc.TodayExercise(1, tomorrow)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.NotEqual(t, exercise.ID, next.ID)
}

func TestTodayExerciseEmptyCatalog(t *testing.T) {
	schedule := NewScheduleService(&fakeCatalog{}, anchor)
	svc := NewWorkoutService(schedule, newFakeLedger(1), 25, 30)

	_, _, err := svc.TodayExercise(1, localDate(2025, time.January, 10))
	assert.ErrorIs(t, err, util.ErrEmptyCatalog)
}

func TestCompletePartialWriteSurfaces(t *testing.T) {
	svc, ledger, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	ledger.recordErr = util.ErrPartialWrite
	_, err = svc.Complete(1, day)
	assert.ErrorIs(t, err, util.ErrPartialWrite)

	// session survives the failure so the user can retry
	assert.Equal(t, SessionEligible, svc.Status(1).State)
}

func TestCompletionHookFires(t *testing.T) {
	svc, _, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	var notified []uint
	svc.OnCompletion(func(userID uint) {
		notified = append(notified, userID)
	})

	_, err := svc.Start(1, day)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	_, err = svc.Complete(1, day)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, notified)
}

func TestSweepSessionsDropsStaleOnes(t *testing.T) {
	svc, _, clock := newWorkoutFixture(t, 5)
	day := localDate(2025, time.January, 10)

	_, err := svc.Start(1, day)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	svc.SweepSessions(24 * time.Hour)

	assert.Equal(t, SessionNotStarted, svc.Status(1).State)
}
