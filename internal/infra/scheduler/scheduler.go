// Package scheduler drives the bank's time-based behavior: the weekly
// rollover check runs on a cron schedule in addition to every session
// start, so a long-running daemon rolls the cycle even when the app never
// comes to the foreground.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/app/bank"
	"github.com/plaisir-app/plaisir/internal/app/gamification"
	"github.com/plaisir-app/plaisir/internal/domain"
)

// DefaultRolloverSpec checks for a due rollover nightly, just after
// midnight (seconds-resolution cron spec).
const DefaultRolloverSpec = "0 1 0 * * *"

// Scheduler manages the cron tasks.
type Scheduler struct {
	cron   *cron.Cron
	bank   *bank.Bank
	nudges *gamification.NudgeService
	log    *logrus.Logger
}

// New creates a Scheduler. The nudge service may be nil.
func New(b *bank.Bank, nudges *gamification.NudgeService, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		bank:   b,
		nudges: nudges,
		log:    log,
	}
}

// RegisterAll registers the scheduled tasks. An empty spec uses the
// default nightly check.
func (s *Scheduler) RegisterAll(rolloverSpec string) error {
	if rolloverSpec == "" {
		rolloverSpec = DefaultRolloverSpec
	}
	if _, err := s.cron.AddFunc(rolloverSpec, func() { s.rolloverCheck() }); err != nil {
		return fmt.Errorf("register rollover check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunRolloverNow executes the rollover check immediately (session start,
// app foreground, manual trigger). Returns true when a rollover happened.
func (s *Scheduler) RunRolloverNow() bool {
	return s.rolloverCheck()
}

func (s *Scheduler) rolloverCheck() bool {
	if !s.bank.EnsureWeekInitialized() {
		return false
	}
	if s.nudges == nil {
		return true
	}
	_, err := s.nudges.Create(domain.Nudge{
		Type:  domain.NudgeNewCycle,
		Title: "A fresh week begins",
		Body:  "Your balance and pleasure meals reset. Bank a surplus to unlock the next one.",
	})
	if err != nil {
		s.log.Warnf("scheduler: rollover nudge failed: %v", err)
	}
	return true
}
