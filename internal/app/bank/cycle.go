package bank

import (
	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
)

// EnsureWeekInitialized starts the first cycle, or rolls the cycle over
// once 7 full days have passed since the week start. Idempotent: call it
// on every session start and app foreground; with no elapsed time it is a
// true no-op. Returns true when a rollover (not first-time setup) was
// performed.
func (b *Bank) EnsureWeekInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.todayKey()

	if b.state.WeekStartDate == "" {
		b.state.WeekStartDate = today
		b.state.IsFirstTime = true
		b.resetQuota()
		b.persist()
		b.log.Infof("bank: first cycle started on %s", today)
		return false
	}

	if domain.DaysBetween(b.state.WeekStartDate, today) < domain.CycleDays {
		return false
	}

	// Cycle rollover: balances, budget, and quota all reset together.
	b.state.DailyBalances = nil
	b.state.CheatMealBudget = 0
	b.spentThisWeek = 0
	b.resetQuota()
	b.state.WeekStartDate = today
	b.persist()
	metrics.WeekRollovers.Inc()
	b.log.Infof("bank: weekly cycle rolled over, new week starts %s", today)
	return true
}

// ConfirmStartDay clears the first-run flag. Purely a UX gate: no
// eligibility rule reads it.
func (b *Bank) ConfirmStartDay() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsFirstTime = false
	b.persist()
}

// IsFirstTime reports whether the user has confirmed their start day yet.
func (b *Bank) IsFirstTime() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.IsFirstTime
}

// CurrentDayIndex returns the zero-indexed day of the current cycle,
// clamped to the last valid index even when a rollover is overdue. The
// rollover itself only happens in EnsureWeekInitialized.
func (b *Bank) CurrentDayIndex() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentDayIndex()
}

func (b *Bank) currentDayIndex() int {
	if b.state.WeekStartDate == "" {
		return 0
	}
	passed := domain.DaysBetween(b.state.WeekStartDate, b.todayKey())
	if passed > domain.CycleDays-1 {
		return domain.CycleDays - 1
	}
	if passed < 0 {
		return 0
	}
	return passed
}

// DaysUntilNewWeek returns how many days remain before the cycle resets.
func (b *Bank) DaysUntilNewWeek() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.daysUntilNewWeek()
}

func (b *Bank) daysUntilNewWeek() int {
	if b.state.WeekStartDate == "" {
		return domain.CycleDays
	}
	remaining := domain.CycleDays - domain.DaysBetween(b.state.WeekStartDate, b.todayKey())
	if remaining < 0 {
		return 0
	}
	return remaining
}
