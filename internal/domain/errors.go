package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Rule violations
// inside the bank core are NOT errors: they surface as booleans or
// structured results. These sentinels cover the storage and collaborator
// boundaries only.

var (
	// Store errors
	ErrSchemaTooNew   = errors.New("persisted bank state has a newer schema version")
	ErrMalformedState = errors.New("persisted bank state is malformed")

	// Ledger input errors
	ErrBadDayKey = errors.New("malformed day key, want YYYY-MM-DD")

	// Gamification errors
	ErrNonPositiveXP     = errors.New("xp amount must be positive")
	ErrNonPositiveMetric = errors.New("metric increment must be positive")
	ErrNudgeNotFound     = errors.New("nudge not found")
)
