package util

import "errors"

var (
	// ErrEmptyCatalog means no active exercise exists for scheduling. The
	// app renders a "nothing scheduled yet" state, it is not a failure.
	ErrEmptyCatalog = errors.New("no active exercises in catalog")

	// ErrAlreadyCompletedToday is the dedup conflict on the completion
	// ledger. The UI treats it as success-adjacent, never an error banner.
	ErrAlreadyCompletedToday = errors.New("exercise already completed today")

	// ErrNotEligible means the confirm action arrived before the engagement
	// countdown elapsed (or without a started session).
	ErrNotEligible = errors.New("completion not eligible yet")

	// ErrPartialWrite means the completion row was recorded but the profile
	// counters did not advance. The completion is durable; a retry must not
	// re-insert. Surfaced to the operational log for reconciliation.
	ErrPartialWrite = errors.New("completion recorded but profile counters not updated")

	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidCredential = errors.New("invalid credentials")
)
