package bank

import (
	"fmt"
	"math"

	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
)

// ActivateBonus computes and activates today's pleasure-meal bonus: half
// the current budget, capped per meal. The auto flow carries a stricter
// 100 kcal floor than explicit redemption — intentional, see the domain
// constants.
func (b *Bank) ActivateBonus() domain.ActivationResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.todayKey()

	if b.state.ActivePlaisirDate == today && b.state.ActivePlaisirBonus > 0 {
		return domain.ActivationResult{
			Message: "a pleasure meal bonus is already active today",
		}
	}
	if !b.canUsePlaisirMeal() {
		return domain.ActivationResult{
			Message: "weekly pleasure meal quota reached",
		}
	}
	if !b.canHavePlaisir() {
		return domain.ActivationResult{
			Message: "pleasure meal is not unlocked yet",
		}
	}

	bonus := int(math.Round(float64(b.state.CheatMealBudget) * domain.AutoBonusRatio))
	if bonus > domain.MaxPlaisirPerMeal {
		bonus = domain.MaxPlaisirPerMeal
	}
	if bonus < domain.MinAutoBonus {
		return domain.ActivationResult{
			Message: "insufficient balance for a pleasure meal bonus",
		}
	}

	b.state.ActivePlaisirBonus = bonus
	b.state.ActivePlaisirDate = today
	b.state.CheatMealBudget -= bonus
	b.spentThisWeek += bonus
	b.addPlaisirDate(today)

	b.appendEvent(domain.EventActivate, today, bonus)
	b.notifyRewards(bonus)
	b.persist()
	metrics.PlaisirRedeemed.Inc()

	b.log.Infof("bank: activated %d kcal bonus for %s", bonus, today)
	return domain.ActivationResult{
		Success: true,
		Bonus:   bonus,
		Message: fmt.Sprintf("pleasure meal bonus of %d kcal activated", bonus),
	}
}

// DeactivateBonus refunds today's active bonus: the exact inverse of
// ActivateBonus for the same day. No gamification reversal happens — XP
// already granted stays granted. A no-op unless a bonus is active today.
func (b *Bank) DeactivateBonus() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.todayKey()
	if b.state.ActivePlaisirDate != today || b.state.ActivePlaisirBonus <= 0 {
		return false
	}

	bonus := b.state.ActivePlaisirBonus
	b.state.CheatMealBudget += bonus
	b.spentThisWeek -= bonus
	if b.spentThisWeek < 0 {
		b.spentThisWeek = 0
	}
	b.state.ActivePlaisirBonus = 0
	b.state.ActivePlaisirDate = ""
	// An explicit redemption today claimed today's quota slot on its
	// own; activation only deduped it. Remove the date only when the
	// activation was its sole claim, so the round trip restores the
	// count exactly.
	if b.state.LastCheatMealDate != today {
		b.removePlaisirDate(today)
	}

	b.appendEvent(domain.EventDeactivate, today, bonus)
	b.persist()

	b.log.Infof("bank: deactivated bonus, refunded %d kcal", bonus)
	return true
}

// ActiveBonus returns today's active bonus amount. A bonus carried by a
// prior date is implicitly expired and reads as zero; no cleanup pass is
// needed.
func (b *Bank) ActiveBonus() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.state.ActivePlaisirDate != b.todayKey() {
		return 0
	}
	return b.state.ActivePlaisirBonus
}

// IsBonusActiveToday reports whether a bonus is live for today's date.
func (b *Bank) IsBonusActiveToday() bool {
	return b.ActiveBonus() > 0
}
