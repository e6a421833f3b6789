package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flyglog/internal/config"
	"flyglog/internal/importer"
	"flyglog/internal/logbook"
	"flyglog/internal/scheduler"
)

// Daemon ties the logbook, the importer task and the scheduler together
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	logbook   logbook.Repository
}

// New creates a new daemon instance from the loaded configuration
func New(cfg *config.Config) (*Daemon, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DataDir is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	db, err := logbook.New(cfg.LogbookPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize logbook: %w", err)
	}

	sched := scheduler.New(ctx)

	scanInterval := 30 * time.Second
	if cfg.ScanInterval > 0 {
		scanInterval = time.Duration(cfg.ScanInterval) * time.Second
	}

	imp := importer.NewWithConfig(db, cfg.DataDir, scanInterval, cfg.DisableCompression)
	sched.AddTask(imp)

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		logbook:   db,
	}, nil
}

// Start begins the periodic import of flight recordings
func (d *Daemon) Start() error {
	slog.Info("Starting daemon")
	d.scheduler.Start()
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()
	d.scheduler.Stop()

	if err := d.logbook.Close(); err != nil {
		slog.Error("Error closing logbook", "error", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
