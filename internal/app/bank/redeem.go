package bank

import (
	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
)

// Redeem consumes an explicit amount of banked surplus for a pleasure
// meal today. Preconditions are checked in order and the first failure
// aborts with no state change. Rejections are silent: callers branch on
// the return value.
func (b *Bank) Redeem(calories int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if calories <= 0 {
		return false
	}
	if !b.canHavePlaisir() {
		return false
	}
	if !b.canUsePlaisirMeal() {
		return false
	}
	if calories > b.state.CheatMealBudget {
		return false
	}
	if calories > b.maxPlaisirPerMeal() {
		return false
	}

	today := b.todayKey()
	b.flagCheatDay(today)
	b.state.CheatMealBudget -= calories // preconditions keep this >= 0
	b.spentThisWeek += calories
	b.addPlaisirDate(today)
	b.state.LastCheatMealDate = today

	b.appendEvent(domain.EventRedeem, today, calories)
	b.notifyRewards(calories)
	b.persist()
	metrics.PlaisirRedeemed.Inc()

	b.log.Infof("bank: redeemed %d kcal on %s (%d left this week)",
		calories, today, b.remainingPlaisirMeals())
	return true
}
