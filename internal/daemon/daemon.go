package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plaisir-app/plaisir/internal/api"
	"github.com/plaisir-app/plaisir/internal/app/bank"
	"github.com/plaisir-app/plaisir/internal/app/gamification"
	"github.com/plaisir-app/plaisir/internal/health"
	"github.com/plaisir-app/plaisir/internal/infra/scheduler"
	"github.com/plaisir-app/plaisir/internal/infra/sqlite"
)

// Daemon is the plaisir runtime. It wires the bank, its collaborators,
// and the HTTP surface together for one user session.
type Daemon struct {
	Config    Config
	Log       *logrus.Logger
	DB        *sqlite.DB
	Bank      *bank.Bank
	Rewards   *gamification.Service
	Nudges    *gamification.NudgeService
	Scheduler *scheduler.Scheduler
	Health    *health.Checker
	Server    *api.Server

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	log := newLogger(cfg.Logging.Level)

	dir := cfg.Data.Dir
	if dir == "" {
		dir = plaisirHome()
	}
	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	nudges := gamification.NewNudgeService(db)
	rewards := gamification.NewService(db, nudges, log)

	b, err := bank.New(db, rewards, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("hydrate bank: %w", err)
	}

	sched := scheduler.New(b, nudges, log)
	if err := sched.RegisterAll(cfg.Scheduler.RolloverSpec); err != nil {
		db.Close()
		return nil, err
	}

	// Session start is a rollover checkpoint: run the idempotent check
	// before anything reads the bank.
	sched.RunRolloverNow()

	checker := health.NewChecker(db, b)

	srv := api.NewServer(b, rewards, nudges)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	srv.SetChecker(checker)
	srv.SetScheduler(sched)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Bank:      b,
		Rewards:   rewards,
		Nudges:    nudges,
		Scheduler: sched,
		Health:    checker,
		Server:    srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)
	d.Scheduler.Start()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		d.Scheduler.Stop()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	d.Log.Infof("plaisir serving on http://%s", addr)
	if d.Config.Telemetry.Prometheus {
		d.Log.Infof("metrics on http://%s/metrics", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Scheduler != nil {
		d.Scheduler.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// newLogger builds the daemon-wide logrus logger.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
