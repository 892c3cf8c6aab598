package health_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/app/bank"
	"github.com/plaisir-app/plaisir/internal/health"
	"github.com/plaisir-app/plaisir/internal/infra/sqlite"
)

func setup(t *testing.T) (*health.Checker, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	b, err := bank.New(db, nil, log)
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	return health.NewChecker(db, b), db
}

func TestChecker_HealthyBeforeRun(t *testing.T) {
	c, _ := setup(t)

	if c.Healthy() {
		t.Error("checker reports healthy before any run")
	}
	if got := c.Statuses(); len(got) != 0 {
		t.Errorf("got %d statuses before any run", len(got))
	}
}

func TestChecker_RunOnce(t *testing.T) {
	c, _ := setup(t)

	c.RunOnce(context.Background())

	if !c.Healthy() {
		t.Error("fresh daemon should be healthy")
	}
	statuses := c.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	names := map[string]bool{}
	for _, status := range statuses {
		names[status.Name] = status.Healthy
		if !status.Healthy {
			t.Errorf("check %q unhealthy: %s", status.Name, status.Error)
		}
		if status.CheckedAt.IsZero() {
			t.Errorf("check %q has no timestamp", status.Name)
		}
	}
	if !names["sqlite"] || !names["bank_invariants"] {
		t.Errorf("missing expected checks, got %v", names)
	}
}

func TestChecker_DetectsClosedStore(t *testing.T) {
	c, db := setup(t)
	db.Close()

	c.RunOnce(context.Background())
	if c.Healthy() {
		t.Error("checker healthy with a closed store")
	}
	for _, status := range c.Statuses() {
		if status.Name == "sqlite" && status.Healthy {
			t.Error("sqlite check passed on a closed store")
		}
	}
}
