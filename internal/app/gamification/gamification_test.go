package gamification_test

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/app/gamification"
	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ═══════════════════════════════════════════════════════════════════════════
// Level & XP
// ═══════════════════════════════════════════════════════════════════════════

func TestXPForLevel_Base(t *testing.T) {
	if xp := gamification.XPForLevel(0); xp != 0 {
		t.Errorf("level 0 needs %d XP, want 0", xp)
	}
	if xp := gamification.XPForLevel(1); xp != 0 {
		t.Errorf("level 1 needs %d XP, want 0", xp)
	}
	// 100 * 1.25^1 = 125
	if xp := gamification.XPForLevel(2); xp != 125 {
		t.Errorf("level 2 needs %d XP, want 125", xp)
	}
}

func TestXPForLevel_Monotonic(t *testing.T) {
	for level := 2; level <= gamification.MaxLevel; level++ {
		if gamification.XPForLevel(level) <= gamification.XPForLevel(level-1) {
			t.Fatalf("curve not strictly increasing at level %d", level)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{124, 1},
		{125, 2},
		{1_000_000_000, gamification.MaxLevel},
	}
	for _, tt := range tests {
		if got := gamification.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestAddXP_Accumulates(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	for i := 0; i < 3; i++ {
		if err := svc.AddXP(domain.XPPerPlaisir, domain.XPPlaisirRedeemed, "test"); err != nil {
			t.Fatalf("add xp: %v", err)
		}
	}

	level, err := svc.CurrentLevel()
	if err != nil {
		t.Fatalf("current level: %v", err)
	}
	if level.CurrentXP != 3*domain.XPPerPlaisir {
		t.Errorf("xp = %d, want %d", level.CurrentXP, 3*domain.XPPerPlaisir)
	}
	if level.Level != 1 {
		t.Errorf("level = %d, want 1 (75 XP < 125)", level.Level)
	}
}

func TestAddXP_RejectsNonPositive(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	if err := svc.AddXP(0, domain.XPPlaisirRedeemed, "test"); err == nil {
		t.Error("expected error for zero XP")
	}
	if err := svc.AddXP(-5, domain.XPPlaisirRedeemed, "test"); err == nil {
		t.Error("expected error for negative XP")
	}
}

func TestAddXP_LevelUpQueuesNudge(t *testing.T) {
	db := testDB(t)
	nudges := gamification.NewNudgeService(db)
	nudges.SetClock(func() time.Time {
		return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) // outside quiet hours
	})
	svc := gamification.NewService(db, nudges, testLogger())

	if err := svc.AddXP(200, domain.XPPlaisirRedeemed, "big reward"); err != nil {
		t.Fatalf("add xp: %v", err)
	}

	level, _ := svc.CurrentLevel()
	if level.Level < 2 {
		t.Fatalf("level = %d, want >= 2", level.Level)
	}

	pending, err := nudges.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Type != domain.NudgeLevelUp {
		t.Errorf("pending nudges = %+v, want one level_up", pending)
	}
}

func TestXPToNextLevel(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	if err := svc.AddXP(100, domain.XPPlaisirRedeemed, "test"); err != nil {
		t.Fatalf("add xp: %v", err)
	}

	remaining, err := svc.XPToNextLevel()
	if err != nil {
		t.Fatalf("xp to next: %v", err)
	}
	if remaining != 25 { // level 2 at 125
		t.Errorf("remaining = %d, want 25", remaining)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Metrics
// ═══════════════════════════════════════════════════════════════════════════

func TestIncrementMetric(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	if err := svc.IncrementMetric(domain.MetricPlaisirEarned, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := svc.IncrementMetric(domain.MetricPlaisirEarned, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}

	value, err := svc.Metric(domain.MetricPlaisirEarned)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if value != 2 {
		t.Errorf("metric = %d, want 2", value)
	}
}

func TestIncrementMetric_RejectsNonPositive(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	if err := svc.IncrementMetric("whatever", 0); err == nil {
		t.Error("expected error for zero increment")
	}
}

func TestMetric_UnsetReadsZero(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(db, nil, testLogger())

	value, err := svc.Metric("never_touched")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if value != 0 {
		t.Errorf("unset metric = %d, want 0", value)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Nudges
// ═══════════════════════════════════════════════════════════════════════════

func TestNudge_DailyCap(t *testing.T) {
	db := testDB(t)
	nudges := gamification.NewNudgeService(db)
	nudges.SetClock(func() time.Time {
		return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	})

	first, err := nudges.Create(domain.Nudge{Type: domain.NudgeMilestone, Title: "a", Body: "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first == 0 {
		t.Fatal("first nudge suppressed unexpectedly")
	}

	second, err := nudges.Create(domain.Nudge{Type: domain.NudgeMilestone, Title: "b", Body: "b"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second != 0 {
		t.Error("second nudge of the day should be suppressed")
	}
}

func TestNudge_QuietHours(t *testing.T) {
	db := testDB(t)
	nudges := gamification.NewNudgeService(db)

	for _, hour := range []int{23, 3, 7} {
		nudges.SetClock(func() time.Time {
			return time.Date(2025, 7, 1, hour, 30, 0, 0, time.UTC)
		})
		id, err := nudges.Create(domain.Nudge{Type: domain.NudgeMilestone, Title: "x", Body: "x"})
		if err != nil {
			t.Fatalf("create at %d:30: %v", hour, err)
		}
		if id != 0 {
			t.Errorf("nudge at %d:30 should be suppressed by quiet hours", hour)
		}
	}

	nudges.SetClock(func() time.Time {
		return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) // quiet window ends
	})
	id, err := nudges.Create(domain.Nudge{Type: domain.NudgeMilestone, Title: "x", Body: "x"})
	if err != nil {
		t.Fatalf("create at 08:00: %v", err)
	}
	if id == 0 {
		t.Error("nudge at 08:00 should pass")
	}
}
