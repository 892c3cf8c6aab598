// Package domain holds the shared types for the caloric reward bank.
// The bank converts daily calorie surpluses into a spendable
// pleasure-meal ("plaisir") bonus under weekly quota rules.
package domain

import "time"

// ─── Day Keys ───────────────────────────────────────────────────────────────

// DayKeyLayout is the calendar-date key format used everywhere a date
// identifies a ledger entry. Keys sort chronologically as plain strings.
const DayKeyLayout = "2006-01-02"

// DayKeyOf returns the day key for the calendar date of t.
func DayKeyOf(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a day key back into a midnight time value.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(DayKeyLayout, key)
}

// DaysBetween returns the whole days elapsed from key a to key b.
// Negative when b is earlier than a. Malformed keys count as zero days.
func DaysBetween(a, b string) int {
	ta, err := ParseDayKey(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDayKey(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// ─── Business Rule Parameters ───────────────────────────────────────────────
// Product constants, not user-configurable.

const (
	// CycleDays is the length of the rolling accounting window and of
	// the weekly quota cycle.
	CycleDays = 7

	// MinPlaisirThreshold is the minimum banked surplus (kcal) before a
	// pleasure meal can unlock.
	MinPlaisirThreshold = 200

	// MaxPlaisirPerMeal is the hard ceiling (kcal) a single bonus may claim.
	MaxPlaisirPerMeal = 600

	// MinDayForPlaisir is the earliest zero-indexed cycle day on which a
	// bonus may unlock (index 2 = third day of the cycle).
	MinDayForPlaisir = 2

	// MaxPlaisirMealsPerWeek caps bonus redemptions per cycle, independent
	// of the available surplus.
	MaxPlaisirMealsPerWeek = 2

	// AutoBonusRatio is the share of the current budget the auto-activation
	// flow proposes as a bonus.
	AutoBonusRatio = 0.5

	// MinAutoBonus is the floor (kcal) below which auto-activation is
	// rejected. Stricter than MinPlaisirThreshold on purpose: the explicit
	// redemption flow has no such floor. Intentional product asymmetry,
	// pending product confirmation.
	MinAutoBonus = 100
)

// ─── Persisted State ────────────────────────────────────────────────────────

// BankSchemaVersion tags the persisted snapshot so future field additions
// can be migrated deliberately.
const BankSchemaVersion = 1

// DailyBalance is one ledger record per calendar date inside the rolling
// window.
type DailyBalance struct {
	Date             string `json:"date"`
	TargetCalories   int    `json:"target_calories"`
	ConsumedCalories int    `json:"consumed_calories"`
	// Balance = target - consumed. Positive is bankable surplus, negative
	// contributes nothing to the budget.
	Balance    int  `json:"balance"`
	IsCheatDay bool `json:"is_cheat_day"`
}

// BankState is the full durable snapshot of the reward bank. Everything
// else the bank knows is derived from these fields and must not be
// persisted.
type BankState struct {
	SchemaVersion        int            `json:"schema_version"`
	DailyBalances        []DailyBalance `json:"daily_balances"`
	WeekStartDate        string         `json:"week_start_date"` // "" before first use
	IsFirstTime          bool           `json:"is_first_time"`
	CheatMealBudget      int            `json:"cheat_meal_budget"`
	LastCheatMealDate    string         `json:"last_cheat_meal_date"`
	WeeklyPlaisirCount   int            `json:"weekly_plaisir_count"`
	PlaisirDatesThisWeek []string       `json:"plaisir_dates_this_week"`
	ActivePlaisirBonus   int            `json:"active_plaisir_bonus"`
	ActivePlaisirDate    string         `json:"active_plaisir_date"`
}

// ─── Operation Results ──────────────────────────────────────────────────────

// ActivationResult is the structured outcome of an auto-activation attempt.
// Rejections are results, not errors: callers branch on Success.
type ActivationResult struct {
	Success bool   `json:"success"`
	Bonus   int    `json:"bonus"`
	Message string `json:"message"`
}

// ─── Bonus History ──────────────────────────────────────────────────────────

// BonusEventKind classifies entries in the append-only bonus history.
type BonusEventKind string

const (
	EventRedeem     BonusEventKind = "redeem"
	EventActivate   BonusEventKind = "activate"
	EventDeactivate BonusEventKind = "deactivate"
)

// BonusEvent is one append-only audit record of a budget movement caused
// by a redemption, activation, or deactivation.
type BonusEvent struct {
	ID        string         `json:"id"`
	Kind      BonusEventKind `json:"kind"`
	Date      string         `json:"date"`
	Calories  int            `json:"calories"`
	CreatedAt time.Time      `json:"created_at"`
}
