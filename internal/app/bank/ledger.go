package bank

import (
	"fmt"
	"sort"

	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
)

// RecordDailyBalance upserts the ledger entry for a calendar date and
// recomputes the budget. The meals collaborator calls this once per
// logging update; calling it repeatedly for the same date is an
// idempotent replace.
//
// Negative consumed values are a caller bug and are accepted as-is.
func (b *Bank) RecordDailyBalance(date string, targetCalories, consumedCalories int) error {
	if _, err := domain.ParseDayKey(date); err != nil {
		return fmt.Errorf("record %q: %w", date, domain.ErrBadDayKey)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := domain.DailyBalance{
		Date:             date,
		TargetCalories:   targetCalories,
		ConsumedCalories: consumedCalories,
		Balance:          targetCalories - consumedCalories,
	}

	replaced := false
	for i, day := range b.state.DailyBalances {
		if day.Date == date {
			entry.IsCheatDay = day.IsCheatDay // flag survives re-logging
			b.state.DailyBalances[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		b.state.DailyBalances = append(b.state.DailyBalances, entry)
	}

	b.trimWindow()
	b.recomputeBudget()
	b.persist()
	metrics.BalanceRecords.Inc()
	return nil
}

// trimWindow applies both window bounds: newest 7 entries, and nothing
// older than 7 days from today. The stricter bound wins.
func (b *Bank) trimWindow() {
	sort.Slice(b.state.DailyBalances, func(i, j int) bool {
		return b.state.DailyBalances[i].Date > b.state.DailyBalances[j].Date
	})
	if len(b.state.DailyBalances) > domain.CycleDays {
		b.state.DailyBalances = b.state.DailyBalances[:domain.CycleDays]
	}

	today := b.todayKey()
	kept := b.state.DailyBalances[:0]
	for _, day := range b.state.DailyBalances {
		if domain.DaysBetween(day.Date, today) < domain.CycleDays {
			kept = append(kept, day)
		}
	}
	b.state.DailyBalances = kept
}

// recomputeBudget rebuilds the budget from the retained window: the sum
// of positive balances minus what was already redeemed this cycle,
// clamped at zero. Callers hold the lock.
func (b *Bank) recomputeBudget() {
	budget := grossSurplus(b.state.DailyBalances) - b.spentThisWeek
	if budget < 0 {
		budget = 0
	}
	b.state.CheatMealBudget = budget
}

// TotalBalance returns the spendable banked surplus.
func (b *Bank) TotalBalance() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.CheatMealBudget
}

// flagCheatDay marks today's ledger entry as a cheat day. A no-op when no
// entry exists for today: the flag only annotates an existing record.
// Callers hold the lock.
func (b *Bank) flagCheatDay(date string) {
	for i, day := range b.state.DailyBalances {
		if day.Date == date {
			b.state.DailyBalances[i].IsCheatDay = true
			return
		}
	}
}
