package service

import (
	"errors"
	"sync"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"
	"pilates_diario_backend/pkg/logger"
	"pilates_diario_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// SessionState is the per-viewing-session gate state. It is derived from the
// session's start time on read, never persisted: navigating away abandons
// the session with no side effect.
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionStarted    SessionState = "started"
	SessionEligible   SessionState = "eligible"
)

// CompletionLedger is the persistence collaborator for the completion flow.
type CompletionLedger interface {
	FindByUserAndDate(userID uint, date time.Time) (*model.Completion, error)
	Record(userID, exerciseID uint, date time.Time, points int) (*model.User, error)
}

// workoutSession tracks one user's engagement countdown in memory.
type workoutSession struct {
	exerciseID uint
	startedAt  time.Time
	duration   time.Duration
}

func (s *workoutSession) state(now time.Time) SessionState {
	if now.Sub(s.startedAt) >= s.duration {
		return SessionEligible
	}
	return SessionStarted
}

// CompletionResult is what the app shows after a confirmed completion.
type CompletionResult struct {
	NewPoints int `json:"newPoints"`
	NewTotal  int `json:"newTotal"`
}

// WorkoutStatus is the gate state plus the seconds left on the countdown.
type WorkoutStatus struct {
	State            SessionState `json:"state"`
	RemainingSeconds int          `json:"remainingSeconds"`
}

// WorkoutService runs the daily completion flow: the engagement gate
// (begin, wait out the countdown, confirm) and the points ledger behind it. Sessions are
// per-user and in-memory; the ledger's (user, date) unique constraint is the
// sole cross-request concurrency mechanism.
type WorkoutService struct {
	Schedule *ScheduleService
	Ledger   CompletionLedger

	rewardPoints    int
	defaultDuration time.Duration
	now             func() time.Time

	mu       sync.Mutex
	sessions map[uint]*workoutSession

	// onCompletion lets the app layer invalidate ranking caches.
	onCompletion func(userID uint)
}

func NewWorkoutService(schedule *ScheduleService, ledger CompletionLedger, rewardPoints, defaultDurationSeconds int) *WorkoutService {
	return &WorkoutService{
		Schedule:        schedule,
		Ledger:          ledger,
		rewardPoints:    rewardPoints,
		defaultDuration: time.Duration(defaultDurationSeconds) * time.Second,
		now:             time.Now,
		sessions:        make(map[uint]*workoutSession),
	}
}

// SetClock replaces the wall clock, for tests.
func (s *WorkoutService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *WorkoutService) OnCompletion(fn func(userID uint)) {
	s.onCompletion = fn
}

// TodayExercise resolves the exercise assigned to the given date together
// with whether the user already completed it.
func (s *WorkoutService) TodayExercise(userID uint, date time.Time) (*model.Exercise, bool, error) {
	completion, err := s.Ledger.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, false, err
	}

	exercise, err := s.Schedule.ExerciseForDate(date)
	if err != nil {
		return nil, completion != nil, err
	}
	return exercise, completion != nil, nil
}

// Start begins (or restarts) the user's viewing session for the given
// date's exercise. Restarting resets the countdown: there is no persisted
// partial progress, this is an engagement timer, not a watch-position
// tracker.
func (s *WorkoutService) Start(userID uint, date time.Time) (*WorkoutStatus, error) {
	exercise, err := s.Schedule.ExerciseForDate(date)
	if err != nil {
		return nil, err
	}

	duration := s.defaultDuration
	if exercise.DurationSeconds > 0 {
		duration = time.Duration(exercise.DurationSeconds) * time.Second
	}

	session := &workoutSession{
		exerciseID: exercise.ID,
		startedAt:  s.now(),
		duration:   duration,
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	return s.statusOf(session), nil
}

// Status reports the gate state of the user's current session.
func (s *WorkoutService) Status(userID uint) *WorkoutStatus {
	s.mu.Lock()
	session := s.sessions[userID]
	s.mu.Unlock()

	if session == nil {
		return &WorkoutStatus{State: SessionNotStarted}
	}
	return s.statusOf(session)
}

// Abandon drops the user's session with no side effect and no record.
func (s *WorkoutService) Abandon(userID uint) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Complete confirms the day's workout. The session must have reached
// Eligible, util.ErrNotEligible otherwise. The UI disables the button
// before then; the service still rejects early confirms itself. On success exactly one ledger row is
// written and the profile counters advance by one reward; a duplicate
// confirm surfaces util.ErrAlreadyCompletedToday and mutates nothing.
func (s *WorkoutService) Complete(userID uint, date time.Time) (*CompletionResult, error) {
	s.mu.Lock()
	session := s.sessions[userID]
	s.mu.Unlock()

	if session == nil || session.state(s.now()) != SessionEligible {
		return nil, util.ErrNotEligible
	}

	user, err := s.Ledger.Record(userID, session.exerciseID, date, s.rewardPoints)
	if err != nil {
		if errors.Is(err, util.ErrPartialWrite) {
			// The completion row may be durable while the counters lag.
			// Reconciliation picks this up from the log; the dedup check
			// stops a retry from double-inserting.
			logger.Log.Error("completion ledger partial write",
				zap.Uint("user_id", userID),
				zap.Uint("exercise_id", session.exerciseID),
				zap.String("date", date.Format(util.DateFormat)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.Abandon(userID)

	monitoring.CompletionsTotal.Inc()
	monitoring.PointsAwardedTotal.Add(float64(s.rewardPoints))

	if s.onCompletion != nil {
		s.onCompletion(userID)
	}

	return &CompletionResult{
		NewPoints: user.Points,
		NewTotal:  user.TotalExercises,
	}, nil
}

func (s *WorkoutService) statusOf(session *workoutSession) *WorkoutStatus {
	now := s.now()
	state := session.state(now)

	remaining := 0
	if state == SessionStarted {
		remaining = int((session.duration - now.Sub(session.startedAt)).Round(time.Second) / time.Second)
	}

	return &WorkoutStatus{
		State:            state,
		RemainingSeconds: remaining,
	}
}

// SweepSessions drops sessions abandoned for longer than maxAge. Run from a
// background ticker; a stale session holds a few dozen bytes, the sweep just
// keeps the map from growing unbounded.
func (s *WorkoutService) SweepSessions(maxAge time.Duration) {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, session := range s.sessions {
		if session.startedAt.Before(cutoff) {
			delete(s.sessions, userID)
		}
	}
}
