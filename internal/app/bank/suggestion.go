package bank

import (
	"fmt"

	"github.com/plaisir-app/plaisir/internal/domain"
)

// Suggestion produces the human-readable bank status. Four mutually
// exclusive cases, checked in priority order. Quota exhaustion always
// wins, even when the day or balance conditions are also unmet: once the
// week's meals are spent there is nothing actionable left to say.
func (b *Bank) Suggestion() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.canUsePlaisirMeal() {
		return fmt.Sprintf(
			"You have enjoyed your %d pleasure meals this week. A new cycle starts in %s.",
			domain.MaxPlaisirMealsPerWeek, pluralDays(b.daysUntilNewWeek()))
	}

	if b.canHavePlaisir() {
		max := b.maxPlaisirPerMeal()
		if b.remainingPlaisirMeals() >= domain.MaxPlaisirMealsPerWeek {
			return fmt.Sprintf(
				"You banked %d kcal. Treat yourself to a pleasure meal of up to %d kcal — %d available this week.",
				b.state.CheatMealBudget, max, domain.MaxPlaisirMealsPerWeek)
		}
		return fmt.Sprintf(
			"You banked %d kcal. Treat yourself to a pleasure meal of up to %d kcal — your last one this week.",
			b.state.CheatMealBudget, max)
	}

	if day := b.currentDayIndex(); day < domain.MinDayForPlaisir {
		return fmt.Sprintf(
			"Keep it up! %s left before a pleasure meal can unlock.",
			pluralDays(domain.MinDayForPlaisir-day))
	}

	missing := domain.MinPlaisirThreshold - b.state.CheatMealBudget
	return fmt.Sprintf("%d kcal left to save to unlock a pleasure meal.", missing)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
