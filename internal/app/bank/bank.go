// Package bank implements the caloric reward bank: a rolling 7-day
// calorie-accounting engine that converts daily surpluses into a
// spendable pleasure-meal bonus under eligibility, capping, and
// weekly-quota rules.
//
// The bank owns its state. All mutation goes through methods; every
// method either fully completes its transition or aborts before touching
// anything. Persistence is a best-effort snapshot write after each
// mutation — the in-memory state is the source of truth for the session.
package bank

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
)

// Store is the durable persistence collaborator. The bank treats it as a
// fire-and-forget snapshot sink: Save failures are logged, never
// propagated, and never roll back in-memory state.
type Store interface {
	LoadBankState() (domain.BankState, bool, error)
	SaveBankState(state domain.BankState) error
	AppendBonusEvent(event domain.BonusEvent) error
	ListBonusEvents(limit int) ([]domain.BonusEvent, error)
}

// Rewards is the external gamification collaborator. Calls are
// fire-and-forget: a failing collaborator must not roll back the bank.
type Rewards interface {
	IncrementMetric(name string, amount int64) error
	AddXP(amount int64, source domain.XPSource, reason string) error
}

// Bank is the owned state object for one user session. Construct once,
// hydrated from the store; tear down by letting the final snapshot write
// complete.
type Bank struct {
	mu      sync.RWMutex
	store   Store
	rewards Rewards
	log     *logrus.Logger
	now     func() time.Time

	state domain.BankState

	// spentThisWeek is transient: the net kcal redeemed since the cycle
	// started. Re-derived on hydrate from the persisted budget, so the
	// snapshot schema stays exactly the contract fields.
	spentThisWeek int
}

// Option configures a Bank at construction.
type Option func(*Bank)

// WithClock overrides the bank's notion of "now". Tests drive cycle
// boundaries with it.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// New hydrates a Bank from the store. A missing snapshot yields a fresh
// bank; a snapshot written by a newer schema is refused.
func New(store Store, rewards Rewards, log *logrus.Logger, opts ...Option) (*Bank, error) {
	b := &Bank{
		store:   store,
		rewards: rewards,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	state, ok, err := store.LoadBankState()
	if err != nil {
		return nil, fmt.Errorf("load bank state: %w", err)
	}
	if !ok {
		b.state = domain.BankState{SchemaVersion: domain.BankSchemaVersion}
		return b, nil
	}
	if state.SchemaVersion > domain.BankSchemaVersion {
		return nil, fmt.Errorf("schema version %d: %w", state.SchemaVersion, domain.ErrSchemaTooNew)
	}

	b.state = state
	b.spentThisWeek = deriveSpent(state)
	return b, nil
}

// deriveSpent reconstructs the transient spent-this-week counter: the
// stored budget is the gross positive balance minus what was already
// redeemed, so the difference recovers the spend.
func deriveSpent(state domain.BankState) int {
	spent := grossSurplus(state.DailyBalances) - state.CheatMealBudget
	if spent < 0 {
		spent = 0
	}
	return spent
}

// grossSurplus sums the positive balances of the window.
func grossSurplus(balances []domain.DailyBalance) int {
	total := 0
	for _, day := range balances {
		if day.Balance > 0 {
			total += day.Balance
		}
	}
	return total
}

// todayKey returns the day key for the current calendar date.
func (b *Bank) todayKey() string {
	return domain.DayKeyOf(b.now())
}

// Snapshot returns a deep copy of the persisted state, for display and
// diagnostics. Safe to call at any frequency.
func (b *Bank) Snapshot() domain.BankState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyState(b.state)
}

func copyState(state domain.BankState) domain.BankState {
	out := state
	out.DailyBalances = append([]domain.DailyBalance(nil), state.DailyBalances...)
	out.PlaisirDatesThisWeek = append([]string(nil), state.PlaisirDatesThisWeek...)
	return out
}

// History returns recent bonus history events, newest first.
func (b *Bank) History(limit int) ([]domain.BonusEvent, error) {
	return b.store.ListBonusEvents(limit)
}

// persist writes the current snapshot, best-effort. Callers hold the lock.
func (b *Bank) persist() {
	if err := b.store.SaveBankState(copyState(b.state)); err != nil {
		b.log.Warnf("bank: snapshot write failed: %v", err)
	}
	metrics.BankBudget.Set(float64(b.state.CheatMealBudget))
}

// appendEvent records a bonus history entry, best-effort. Callers hold
// the lock.
func (b *Bank) appendEvent(kind domain.BonusEventKind, date string, calories int) {
	event := domain.BonusEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Date:      date,
		Calories:  calories,
		CreatedAt: b.now(),
	}
	if err := b.store.AppendBonusEvent(event); err != nil {
		b.log.Warnf("bank: bonus history write failed: %v", err)
	}
}

// notifyRewards emits the gamification side effects of a successful
// redemption. Fire-and-forget by contract: XP already granted is never
// clawed back, and collaborator failures only get logged.
func (b *Bank) notifyRewards(calories int) {
	if b.rewards == nil {
		return
	}
	if err := b.rewards.IncrementMetric(domain.MetricPlaisirEarned, 1); err != nil {
		b.log.Warnf("bank: metric increment failed: %v", err)
	}
	reason := fmt.Sprintf("pleasure meal redeemed (%d kcal)", calories)
	if err := b.rewards.AddXP(domain.XPPerPlaisir, domain.XPPlaisirRedeemed, reason); err != nil {
		b.log.Warnf("bank: xp award failed: %v", err)
	}
}

// CheckInvariants verifies the numeric invariants the bank must never
// violate. Used by the health checker.
func (b *Bank) CheckInvariants() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.state.CheatMealBudget < 0 {
		return fmt.Errorf("budget is negative: %d", b.state.CheatMealBudget)
	}
	if b.state.WeeklyPlaisirCount < 0 {
		return fmt.Errorf("quota count is negative: %d", b.state.WeeklyPlaisirCount)
	}
	if b.state.WeeklyPlaisirCount != len(b.state.PlaisirDatesThisWeek) {
		return fmt.Errorf("quota count %d does not match date set size %d",
			b.state.WeeklyPlaisirCount, len(b.state.PlaisirDatesThisWeek))
	}
	if b.state.WeeklyPlaisirCount > domain.MaxPlaisirMealsPerWeek {
		return fmt.Errorf("quota count %d exceeds weekly cap", b.state.WeeklyPlaisirCount)
	}
	if len(b.state.DailyBalances) > domain.CycleDays {
		return fmt.Errorf("ledger holds %d entries, window is %d days",
			len(b.state.DailyBalances), domain.CycleDays)
	}
	return nil
}
