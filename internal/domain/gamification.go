package domain

// Gamification types. The reward bank notifies this subsystem on every
// successful redemption; it owns its own state (XP, levels, metric
// counters, nudges) and its failures never roll back the bank.

import "time"

// ─── Level / XP Types ───────────────────────────────────────────────────────

// UserLevel is the user's current level and cumulative XP.
type UserLevel struct {
	Level     int   `json:"level"`
	CurrentXP int64 `json:"current_xp"`
}

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPPlaisirRedeemed XPSource = "PLAISIR_REDEEMED"
	XPWeekCompleted   XPSource = "WEEK_COMPLETED"
	XPMilestone       XPSource = "MILESTONE"
)

// XPPerPlaisir is the fixed XP reward granted for each successful
// pleasure-meal redemption or activation.
const XPPerPlaisir int64 = 25

// MetricPlaisirEarned is the named gamification counter incremented on
// every successful redemption. The French key is part of the collaborator
// contract with the mobile app.
const MetricPlaisirEarned = "repas_plaisir_earned"

// ─── Nudge Types ────────────────────────────────────────────────────────────

// NudgeType categorizes coaching nudges.
type NudgeType string

const (
	NudgeLevelUp   NudgeType = "level_up"
	NudgeNewCycle  NudgeType = "new_cycle"
	NudgeMilestone NudgeType = "milestone"
)

// Nudge is a user-facing coaching message queued for the app to display.
type Nudge struct {
	ID        int64     `json:"id"`
	Type      NudgeType `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// NudgePolicy governs how often nudges may be created.
type NudgePolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNudgePolicy returns the shipped policy: at most one nudge per
// day, nothing overnight.
func DefaultNudgePolicy() NudgePolicy {
	return NudgePolicy{
		MaxPerDay:  1,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
