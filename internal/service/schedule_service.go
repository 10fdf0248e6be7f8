package service

import (
	"math"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"
)

// CatalogSource supplies the active exercise catalog ordered by day_order
// ascending with id as the stable tiebreak.
type CatalogSource interface {
	FindActiveOrdered() ([]model.Exercise, error)
}

// ScheduleService picks the exercise assigned to a calendar day. The mapping
// is a pure function of (catalog snapshot, date): the rotation walks the
// ordered catalog one entry per day, starting at the anchor date and
// wrapping around.
type ScheduleService struct {
	Catalog CatalogSource
	anchor  time.Time
}

func NewScheduleService(catalog CatalogSource, anchor time.Time) *ScheduleService {
	return &ScheduleService{
		Catalog: catalog,
		anchor:  anchor,
	}
}

// ExerciseForDate returns the exercise scheduled for the given date. The
// date is always passed in by the caller; this service never reads the
// system clock. An empty catalog yields util.ErrEmptyCatalog.
func (s *ScheduleService) ExerciseForDate(date time.Time) (*model.Exercise, error) {
	catalog, err := s.Catalog.FindActiveOrdered()
	if err != nil {
		return nil, err
	}
	return PickForDate(catalog, s.anchor, date)
}

// PickForDate is the selection function itself: index = days since the
// anchor (floored at zero) modulo catalog size. Exported so the rotation is
// testable without a store.
func PickForDate(catalog []model.Exercise, anchor, date time.Time) (*model.Exercise, error) {
	if len(catalog) == 0 {
		return nil, util.ErrEmptyCatalog
	}

	days := DaysBetween(anchor, date)
	if days < 0 {
		days = 0
	}

	index := days % len(catalog)
	return &catalog[index], nil
}

// LocalMidnight truncates a time to the start of its calendar day in its own
// location. Day boundaries follow the user's local day, never UTC, so the
// rotation does not skip or repeat around midnight.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b, midnight to midnight.
// Rounding absorbs the off-by-one-hour drift a DST transition introduces
// between two local midnights.
func DaysBetween(a, b time.Time) int {
	diff := LocalMidnight(b).Sub(LocalMidnight(a))
	return int(math.Round(diff.Hours() / 24))
}
