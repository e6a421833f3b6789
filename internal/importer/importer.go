package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flyglog/flyg"
	"flyglog/internal/logbook"
)

// Importer scans a drop directory for flight recordings and commits newly
// found ones to the logbook. It satisfies the scheduler Task interface so a
// daemon can run it periodically.
type Importer struct {
	repo     logbook.Repository
	loader   *flyg.Loader
	dataDir  string
	interval time.Duration
}

// New creates an importer for dataDir with the default 30 second scan
// interval and compression support enabled
func New(repo logbook.Repository, dataDir string) *Importer {
	return &Importer{
		repo:     repo,
		loader:   &flyg.Loader{},
		dataDir:  dataDir,
		interval: 30 * time.Second,
	}
}

// NewWithConfig creates an importer with a custom scan interval and loader
// capability settings
func NewWithConfig(repo logbook.Repository, dataDir string, interval time.Duration, disableCompression bool) *Importer {
	return &Importer{
		repo:     repo,
		loader:   &flyg.Loader{DisableCompression: disableCompression},
		dataDir:  dataDir,
		interval: interval,
	}
}

// Name returns the task name used in scheduler logs
func (i *Importer) Name() string {
	return "recording-importer"
}

// Interval returns how often the drop directory is scanned
func (i *Importer) Interval() time.Duration {
	return i.interval
}

// Run performs one scan of the drop directory. Recordings that were already
// imported are skipped; recordings that fail to load are logged with their
// classification and left in place so a later repair can pick them up.
func (i *Importer) Run(ctx context.Context) error {
	entries, err := os.ReadDir(i.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory %s: %w", i.dataDir, err)
	}

	var imported, skipped, failed int

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if entry.IsDir() || !isRecording(entry.Name()) {
			continue
		}

		exists, err := i.repo.HasRecording(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to check logbook for %s: %w", entry.Name(), err)
		}
		if exists {
			skipped++
			continue
		}

		rec, err := i.loader.Load(filepath.Join(i.dataDir, entry.Name()))
		if err != nil {
			failed++
			slog.Warn("Failed to load recording", "file", entry.Name(), "error", err)
			continue
		}

		flightID, err := i.repo.InsertRecording(entry.Name(), rec)
		if err != nil {
			failed++
			slog.Error("Failed to store recording", "file", entry.Name(), "error", err)
			continue
		}

		imported++
		slog.Info("Imported flight recording",
			"file", entry.Name(),
			"flight_id", flightID,
			"plane", rec.PlaneInformation.Name,
			"fuel_samples", len(rec.FuelRecords),
		)
	}

	slog.Debug("Scan complete",
		"data_dir", i.dataDir,
		"imported", imported,
		"skipped", skipped,
		"failed", failed,
	)

	return nil
}

// isRecording reports whether a filename looks like a flight recording:
// either a plain .flyg file or a gzip-compressed .flyg.gz one.
func isRecording(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".flyg" {
		return true
	}
	if ext == flyg.CompressedExtension {
		return strings.HasSuffix(strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))), ".flyg")
	}
	return false
}
