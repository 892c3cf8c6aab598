package bank

import "github.com/plaisir-app/plaisir/internal/domain"

// Eligibility engine: pure read-only decision logic, no mutation. Every
// public getter here is safe to call on every render.

// CanHavePlaisir reports whether a pleasure meal can unlock right now.
// Three conditions, all necessary: the cycle has reached day 3, the
// banked surplus clears the unlock threshold, and the weekly quota is not
// exhausted.
func (b *Bank) CanHavePlaisir() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.canHavePlaisir()
}

func (b *Bank) canHavePlaisir() bool {
	return b.currentDayIndex() >= domain.MinDayForPlaisir &&
		b.state.CheatMealBudget >= domain.MinPlaisirThreshold &&
		b.canUsePlaisirMeal()
}

// MaxPlaisirPerMeal returns the ceiling a single redemption may claim:
// the banked surplus, capped at the per-meal maximum.
func (b *Bank) MaxPlaisirPerMeal() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.maxPlaisirPerMeal()
}

func (b *Bank) maxPlaisirPerMeal() int {
	if b.state.CheatMealBudget > domain.MaxPlaisirPerMeal {
		return domain.MaxPlaisirPerMeal
	}
	return b.state.CheatMealBudget
}

// RequiresSplitConsumption signals the UI that the surplus exceeds what
// one bonus can use, so a second bonus remains banked.
func (b *Bank) RequiresSplitConsumption() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.CheatMealBudget > domain.MaxPlaisirPerMeal
}

// RemainingPlaisirMeals returns how many redemptions are left this week.
func (b *Bank) RemainingPlaisirMeals() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.remainingPlaisirMeals()
}

func (b *Bank) remainingPlaisirMeals() int {
	remaining := domain.MaxPlaisirMealsPerWeek - b.state.WeeklyPlaisirCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanUsePlaisirMeal reports whether the weekly quota still has room.
func (b *Bank) CanUsePlaisirMeal() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.canUsePlaisirMeal()
}

func (b *Bank) canUsePlaisirMeal() bool {
	return b.state.WeeklyPlaisirCount < domain.MaxPlaisirMealsPerWeek
}
