package bank_test

import (
	"testing"

	"github.com/plaisir-app/plaisir/internal/domain"
)

func TestActivateBonus_HalfBudget(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 300, 300) // 1000 banked

	result := b.ActivateBonus()
	if !result.Success {
		t.Fatalf("activation failed: %s", result.Message)
	}
	if result.Bonus != 500 {
		t.Errorf("bonus = %d, want 500", result.Bonus)
	}
	if b.TotalBalance() != 500 {
		t.Errorf("budget after activation = %d, want 500", b.TotalBalance())
	}
	if b.ActiveBonus() != 500 {
		t.Errorf("ActiveBonus = %d, want 500", b.ActiveBonus())
	}
	if !b.IsBonusActiveToday() {
		t.Error("bonus should read as active today")
	}
	if b.Snapshot().WeeklyPlaisirCount != 1 {
		t.Errorf("quota count = %d, want 1", b.Snapshot().WeeklyPlaisirCount)
	}
}

func TestActivateBonus_CappedPerMeal(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 500, 500, 400) // 1400 banked, half is 700

	result := b.ActivateBonus()
	if !result.Success {
		t.Fatalf("activation failed: %s", result.Message)
	}
	if result.Bonus != domain.MaxPlaisirPerMeal {
		t.Errorf("bonus = %d, want the %d cap", result.Bonus, domain.MaxPlaisirPerMeal)
	}
}

func TestActivateBonus_RejectsSecondSameDay(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 400, 400)

	if result := b.ActivateBonus(); !result.Success {
		t.Fatalf("first activation failed: %s", result.Message)
	}
	result := b.ActivateBonus()
	if result.Success {
		t.Fatal("second activation on the same day succeeded")
	}
	if result.Message != "a pleasure meal bonus is already active today" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestActivateBonus_NotUnlocked(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 400) // day 2, not unlocked yet

	result := b.ActivateBonus()
	if result.Success {
		t.Fatal("activation succeeded before day 3")
	}
	if result.Message != "pleasure meal is not unlocked yet" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestActivateBonus_QuotaMessageWins(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 400, 400)
	if !b.Redeem(200) || !b.Redeem(200) {
		t.Fatal("redemptions should succeed")
	}

	// Quota exhaustion is reported even though the bonus would also fail
	// other checks.
	result := b.ActivateBonus()
	if result.Success {
		t.Fatal("activation succeeded past the quota")
	}
	if result.Message != "weekly pleasure meal quota reached" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestDeactivateBonus_ExactInverse(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 300, 300)

	before := b.Snapshot()
	result := b.ActivateBonus()
	if !result.Success {
		t.Fatalf("activation failed: %s", result.Message)
	}
	if !b.DeactivateBonus() {
		t.Fatal("deactivation failed")
	}

	after := b.Snapshot()
	if after.CheatMealBudget != before.CheatMealBudget {
		t.Errorf("budget = %d, want %d", after.CheatMealBudget, before.CheatMealBudget)
	}
	if after.WeeklyPlaisirCount != before.WeeklyPlaisirCount {
		t.Errorf("quota count = %d, want %d", after.WeeklyPlaisirCount, before.WeeklyPlaisirCount)
	}
	if after.ActivePlaisirBonus != 0 || after.ActivePlaisirDate != "" {
		t.Error("active bonus fields should be cleared")
	}
	if b.DeactivateBonus() {
		t.Error("second deactivation should be a no-op")
	}
	if err := b.CheckInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
}

func TestDeactivateBonus_AfterSameDayRedemption(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 400, 400) // 1200 banked

	if !b.Redeem(200) {
		t.Fatal("redeem should succeed")
	}
	if b.Snapshot().WeeklyPlaisirCount != 1 {
		t.Fatalf("count after redeem = %d, want 1", b.Snapshot().WeeklyPlaisirCount)
	}

	// Activation on the same day dedupes the date, so deactivation must
	// not strip the redemption's quota claim.
	if result := b.ActivateBonus(); !result.Success {
		t.Fatalf("activation failed: %s", result.Message)
	}
	if !b.DeactivateBonus() {
		t.Fatal("deactivation failed")
	}

	state := b.Snapshot()
	if state.WeeklyPlaisirCount != 1 {
		t.Errorf("count after round trip = %d, want 1", state.WeeklyPlaisirCount)
	}
	found := false
	for _, d := range state.PlaisirDatesThisWeek {
		if d == clock.Today() {
			found = true
		}
	}
	if !found {
		t.Error("today dropped from the quota date set")
	}
	if b.TotalBalance() != 1000 {
		t.Errorf("budget = %d, want 1000", b.TotalBalance())
	}
	if err := b.CheckInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
}

func TestActiveBonus_ExpiresWithTheDay(t *testing.T) {
	b, clock, _ := newTestBank(t)
	seedWeek(t, b, clock, 400, 300, 300)

	if result := b.ActivateBonus(); !result.Success {
		t.Fatalf("activation failed: %s", result.Message)
	}
	clock.AdvanceDays(1)

	if b.ActiveBonus() != 0 {
		t.Errorf("yesterday's bonus still reads as %d", b.ActiveBonus())
	}
	if b.IsBonusActiveToday() {
		t.Error("yesterday's bonus reads as active")
	}
	if b.DeactivateBonus() {
		t.Error("deactivated a bonus from a prior day")
	}
}
