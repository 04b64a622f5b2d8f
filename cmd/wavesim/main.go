// Package main is the entry point for the headless wave simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/tidewater/internal/config"
	"github.com/Faultbox/tidewater/internal/logger"
	"github.com/Faultbox/tidewater/internal/sim"
	"github.com/Faultbox/tidewater/pkg/formats"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tidewater wave simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	set, err := sim.LoadWaveSet(cfg)
	switch {
	case sim.IsConfigurationInvalid(err):
		// Invalid waves leave the surface at rest rather than aborting the run.
		logger.Warn("wave configuration invalid, surface stays flat", zap.Error(err))
		set = nil
	case err != nil:
		logger.Error("failed to load waves", zap.Error(err))
		os.Exit(1)
	default:
		logger.Info("waves loaded",
			zap.Int("components", set.Len()),
			zap.Float64("gravity", set.Gravity()),
			zap.String("source", waveSource(cfg)),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := sim.New(cfg, set, logger.Named("sim"))
	logger.Info("simulating",
		zap.Int("vertices", s.Surface().Len()),
		zap.Int("ticks", cfg.Simulation.Ticks),
		zap.Int("workers", cfg.Simulation.Workers),
	)

	stats, err := s.Run(ctx)
	if err != nil {
		logger.Warn("simulation interrupted", zap.Error(err))
	}

	logger.Info("simulation finished",
		zap.Int("ticks", stats.Ticks),
		zap.Int("skipped", stats.Skipped),
		zap.Float64("sim_time", stats.SimTime),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Duration("per_tick", stats.PerTick()),
		zap.Float64("min_y", stats.MinHeight),
		zap.Float64("max_y", stats.MaxHeight),
	)

	if cfg.Output.OBJPath != "" {
		if err := writeFrame(cfg.Output.OBJPath, s); err != nil {
			logger.Error("failed to write frame", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("frame written", zap.String("path", cfg.Output.OBJPath))
	}
}

func waveSource(cfg *config.Config) string {
	if cfg.Water.WaveFile != "" {
		return cfg.Water.WaveFile
	}
	return fmt.Sprintf("generator(seed=%d)", cfg.Generator.Seed)
}

func writeFrame(path string, s *sim.Simulation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	surface := s.Surface()
	if err := formats.WriteOBJ(f, surface.Vertices(), surface.Normals(), surface.Indices()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
