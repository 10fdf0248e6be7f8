package service

import (
	"testing"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	exercises []model.Exercise
	err       error
}

func (f *fakeCatalog) FindActiveOrdered() ([]model.Exercise, error) {
	return f.exercises, f.err
}

func catalogOf(n int) []model.Exercise {
	exercises := make([]model.Exercise, n)
	for i := range exercises {
		exercises[i].ID = uint(i + 1)
		exercises[i].DayOrder = i + 1
	}
	return exercises
}

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

var anchor = localDate(2025, time.January, 1)

func TestPickForDateCyclesCatalog(t *testing.T) {
	catalog := catalogOf(3)

	cases := []struct {
		date   time.Time
		wantID uint
	}{
		{localDate(2025, time.January, 1), 1},
		{localDate(2025, time.January, 2), 2},
		{localDate(2025, time.January, 3), 3},
		{localDate(2025, time.January, 4), 1},
		{localDate(2025, time.January, 31), 1},
	}

	for _, tc := range cases {
		got, err := PickForDate(catalog, anchor, tc.date)
		require.NoError(t, err)
		assert.Equal(t, tc.wantID, got.ID, "date %s", tc.date.Format(util.DateFormat))
	}
}

func TestPickForDateIsDeterministic(t *testing.T) {
	catalog := catalogOf(7)
	date := localDate(2025, time.March, 15)

	first, err := PickForDate(catalog, anchor, date)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := PickForDate(catalog, anchor, date)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestPickForDateBeforeAnchorFloorsToFirst(t *testing.T) {
	catalog := catalogOf(5)

	got, err := PickForDate(catalog, anchor, localDate(2024, time.December, 25))
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestPickForDateEmptyCatalog(t *testing.T) {
	_, err := PickForDate(nil, anchor, localDate(2025, time.June, 1))
	assert.ErrorIs(t, err, util.ErrEmptyCatalog)
}

func TestExerciseForDateUsesCatalogSnapshot(t *testing.T) {
	catalog := &fakeCatalog{exercises: catalogOf(2)}
	svc := NewScheduleService(catalog, anchor)

	got, err := svc.ExerciseForDate(localDate(2025, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ID)

	// a shrunk catalog immediately remaps the same date
	catalog.exercises = catalogOf(1)
	got, err = svc.ExerciseForDate(localDate(2025, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestDayBoundaryIsLocalMidnight(t *testing.T) {
	catalog := catalogOf(10)

	lateEvening := time.Date(2025, time.January, 3, 23, 59, 59, 0, time.Local)
	justAfter := time.Date(2025, time.January, 4, 0, 0, 1, 0, time.Local)

	before, err := PickForDate(catalog, anchor, lateEvening)
	require.NoError(t, err)
	after, err := PickForDate(catalog, anchor, justAfter)
	require.NoError(t, err)

	assert.Equal(t, uint(3), before.ID)
	assert.Equal(t, uint(4), after.ID)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(anchor, anchor))
	assert.Equal(t, 1, DaysBetween(anchor, localDate(2025, time.January, 2)))
	assert.Equal(t, 31, DaysBetween(anchor, localDate(2025, time.February, 1)))
	assert.Equal(t, -1, DaysBetween(anchor, localDate(2024, time.December, 31)))

	// time of day never shifts the count
	noon := time.Date(2025, time.January, 5, 12, 30, 0, 0, time.Local)
	assert.Equal(t, 4, DaysBetween(anchor, noon))
}
