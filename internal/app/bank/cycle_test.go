package bank_test

import (
	"testing"

	"github.com/plaisir-app/plaisir/internal/domain"
)

func TestEnsureWeekInitialized_FirstTime(t *testing.T) {
	b, clock, _ := newTestBank(t)

	if rolled := b.EnsureWeekInitialized(); rolled {
		t.Error("first initialization must not count as a rollover")
	}
	state := b.Snapshot()
	if state.WeekStartDate != clock.Today() {
		t.Errorf("week start = %q, want %q", state.WeekStartDate, clock.Today())
	}
	if !state.IsFirstTime {
		t.Error("first initialization should raise the first-time flag")
	}

	b.ConfirmStartDay()
	if b.IsFirstTime() {
		t.Error("ConfirmStartDay should clear the first-time flag")
	}
}

func TestEnsureWeekInitialized_NoOpWithinCycle(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 200, 300)

	before := b.Snapshot()
	clock.AdvanceDays(3) // day index 4, still inside the cycle
	if rolled := b.EnsureWeekInitialized(); rolled {
		t.Error("rollover inside the cycle window")
	}
	after := b.Snapshot()
	if after.WeekStartDate != before.WeekStartDate {
		t.Errorf("week start moved from %q to %q", before.WeekStartDate, after.WeekStartDate)
	}
	if after.CheatMealBudget != before.CheatMealBudget {
		t.Errorf("budget changed from %d to %d", before.CheatMealBudget, after.CheatMealBudget)
	}
}

func TestEnsureWeekInitialized_Rollover(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 200, 300, 100)
	if !b.Redeem(300) {
		t.Fatal("redeem should succeed")
	}

	clock.AdvanceDays(5) // 7 full days since week start
	if rolled := b.EnsureWeekInitialized(); !rolled {
		t.Fatal("expected a rollover after 7 days")
	}

	state := b.Snapshot()
	if state.WeekStartDate != clock.Today() {
		t.Errorf("new week start = %q, want %q", state.WeekStartDate, clock.Today())
	}
	if state.CheatMealBudget != 0 {
		t.Errorf("budget after rollover = %d, want 0", state.CheatMealBudget)
	}
	if len(state.DailyBalances) != 0 {
		t.Errorf("ledger after rollover has %d entries", len(state.DailyBalances))
	}
	if state.WeeklyPlaisirCount != 0 || len(state.PlaisirDatesThisWeek) != 0 {
		t.Error("quota should reset on rollover")
	}
	if b.RemainingPlaisirMeals() != domain.MaxPlaisirMealsPerWeek {
		t.Errorf("remaining meals = %d, want %d", b.RemainingPlaisirMeals(), domain.MaxPlaisirMealsPerWeek)
	}
}

func TestEnsureWeekInitialized_Idempotent(t *testing.T) {
	b, clock, _ := newTestBank(t)
	b.EnsureWeekInitialized()
	clock.AdvanceDays(9)

	if rolled := b.EnsureWeekInitialized(); !rolled {
		t.Fatal("overdue cycle should roll over")
	}
	// The second call on the same day is a pure no-op.
	if rolled := b.EnsureWeekInitialized(); rolled {
		t.Error("repeat call on the same day rolled over again")
	}
	if b.Snapshot().WeekStartDate != clock.Today() {
		t.Errorf("week start = %q, want %q", b.Snapshot().WeekStartDate, clock.Today())
	}
}

func TestCurrentDayIndex_Clamped(t *testing.T) {
	b, clock, _ := newTestBank(t)
	b.EnsureWeekInitialized()

	if got := b.CurrentDayIndex(); got != 0 {
		t.Errorf("day index at start = %d, want 0", got)
	}
	clock.AdvanceDays(3)
	if got := b.CurrentDayIndex(); got != 3 {
		t.Errorf("day index = %d, want 3", got)
	}
	// An overdue rollover clamps instead of overflowing.
	clock.AdvanceDays(6)
	if got := b.CurrentDayIndex(); got != domain.CycleDays-1 {
		t.Errorf("day index = %d, want %d", got, domain.CycleDays-1)
	}
}

func TestDaysUntilNewWeek(t *testing.T) {
	b, clock, _ := newTestBank(t)

	if got := b.DaysUntilNewWeek(); got != domain.CycleDays {
		t.Errorf("before init = %d, want %d", got, domain.CycleDays)
	}
	b.EnsureWeekInitialized()
	clock.AdvanceDays(5)
	if got := b.DaysUntilNewWeek(); got != 2 {
		t.Errorf("on day 6 = %d, want 2", got)
	}
	clock.AdvanceDays(4)
	if got := b.DaysUntilNewWeek(); got != 0 {
		t.Errorf("overdue = %d, want 0", got)
	}
}
