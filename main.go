package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"flyglog/flyg"
	"flyglog/internal/config"
	"flyglog/internal/daemon"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// showRecording loads a single recording and prints its summary, without
// touching the logbook
func showRecording(path string, disableCompression bool) {
	loader := flyg.Loader{DisableCompression: disableCompression}

	rec, err := loader.Load(path)
	if err != nil {
		slog.Error("Failed to load recording", "file", path, "error", err)
		os.Exit(1)
	}

	slog.Info("Loaded flight recording",
		"file", path,
		"plane", rec.PlaneInformation.Name,
		"engines", rec.PlaneInformation.NumberOfEngines,
		"fuel_capacity_gal", rec.PlaneInformation.FuelCapacity,
		"landing_speed_fps", rec.LandingSpeed,
		"block_off", rec.Times.BlockOffTime,
		"takeoff", rec.Times.TakeoffTime,
		"landing", rec.Times.LandingTime,
		"block_on", rec.Times.BlockOnTime,
		"fuel_samples", len(rec.FuelRecords),
	)
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	filePath := flag.String("file", "", "Load a single recording, print its summary and exit")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("FLYGLOG_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet, use a basic one for this error
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if *filePath != "" {
		showRecording(*filePath, cfg.DisableCompression)
		return
	}

	d, err := daemon.New(cfg)
	if err != nil {
		slog.Error("Failed to create daemon", "error", err)
		os.Exit(1)
	}

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("Watching for flight recordings", "data_dir", cfg.DataDir, "logbook", cfg.LogbookPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("Received interrupt signal, shutting down...")

	if err := d.Stop(); err != nil {
		slog.Error("Error stopping daemon", "error", err)
		os.Exit(1)
	}
}
