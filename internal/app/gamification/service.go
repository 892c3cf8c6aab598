package gamification

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/metrics"
	"github.com/plaisir-app/plaisir/internal/infra/sqlite"
)

// Service is the gamification collaborator the bank talks to. It
// satisfies the bank's Rewards interface.
type Service struct {
	db     *sqlite.DB
	nudges *NudgeService
	log    *logrus.Logger
}

// NewService creates a gamification service. The nudge service may be nil
// when nudges are not wanted (tests).
func NewService(db *sqlite.DB, nudges *NudgeService, log *logrus.Logger) *Service {
	return &Service{db: db, nudges: nudges, log: log}
}

// AddXP grants experience points. On a level-up a nudge is queued under
// the nudge policy.
func (s *Service) AddXP(amount int64, source domain.XPSource, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrNonPositiveXP, amount)
	}

	current, err := s.CurrentLevel()
	if err != nil {
		return fmt.Errorf("current level: %w", err)
	}

	newXP := current.CurrentXP + amount
	if err := s.db.SetEngagement("xp", strconv.FormatInt(newXP, 10)); err != nil {
		return fmt.Errorf("save xp: %w", err)
	}

	newLevel := LevelForXP(newXP)
	// Persisted for quick reads by the app shell
	if err := s.db.SetEngagement("level", strconv.Itoa(newLevel)); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	metrics.XPTotal.Set(float64(newXP))

	s.log.Infof("gamification: +%d XP (%s: %s)", amount, source, reason)

	if newLevel > current.Level && s.nudges != nil {
		_, err := s.nudges.Create(domain.Nudge{
			Type:  domain.NudgeLevelUp,
			Title: fmt.Sprintf("Level %d reached", newLevel),
			Body:  fmt.Sprintf("Your consistency paid off: you are now level %d.", newLevel),
		})
		if err != nil {
			s.log.Warnf("gamification: level-up nudge failed: %v", err)
		}
	}
	return nil
}

// IncrementMetric bumps a named counter in durable state and mirrors it
// to Prometheus.
func (s *Service) IncrementMetric(name string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrNonPositiveMetric, amount)
	}

	current, err := s.Metric(name)
	if err != nil {
		return fmt.Errorf("read metric %s: %w", name, err)
	}
	next := current + amount
	if err := s.db.SetEngagement(metricKey(name), strconv.FormatInt(next, 10)); err != nil {
		return fmt.Errorf("save metric %s: %w", name, err)
	}
	metrics.MetricIncrements.WithLabelValues(name).Add(float64(amount))
	return nil
}

// Metric returns the current value of a named counter, zero when unset.
func (s *Service) Metric(name string) (int64, error) {
	value, err := s.db.GetEngagement(metricKey(name))
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("metric %s=%q: %w", name, value, err)
	}
	return n, nil
}

func metricKey(name string) string {
	return "metric_" + name
}
