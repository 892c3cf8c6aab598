// Package metrics provides Prometheus metrics for the reward bank:
// counters and gauges for the ledger, redemptions, cycle rollovers, and
// gamification.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Balance Ledger ─────────────────────────────────────────────────────────

// BalanceRecords counts daily balance upserts from the meals collaborator.
var BalanceRecords = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "plaisir",
	Name:      "balance_records_total",
	Help:      "Total daily balance records received.",
})

// BankBudget tracks the current banked surplus in kcal.
var BankBudget = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "plaisir",
	Name:      "bank_budget_kcal",
	Help:      "Current spendable banked surplus in kcal.",
})

// ─── Redemptions ────────────────────────────────────────────────────────────

// PlaisirRedeemed counts successful redemptions and activations.
var PlaisirRedeemed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "plaisir",
	Name:      "plaisir_redeemed_total",
	Help:      "Total successful pleasure meal redemptions.",
})

// ─── Weekly Cycle ───────────────────────────────────────────────────────────

// WeekRollovers counts weekly cycle resets.
var WeekRollovers = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "plaisir",
	Name:      "week_rollovers_total",
	Help:      "Total weekly cycle rollovers.",
})

// ─── Gamification ───────────────────────────────────────────────────────────

// XPTotal tracks the user's cumulative XP.
var XPTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "plaisir",
	Name:      "xp_total",
	Help:      "Cumulative gamification XP.",
})

// MetricIncrements counts named gamification metric increments.
var MetricIncrements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "plaisir",
	Name:      "reward_metric_increments_total",
	Help:      "Named gamification counter increments.",
}, []string{"name"})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "plaisir",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
