// Package sim runs a headless water simulation from configuration.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tidewater/internal/config"
	"github.com/Faultbox/tidewater/internal/engine/water"
	"github.com/Faultbox/tidewater/pkg/formats"
	tmath "github.com/Faultbox/tidewater/pkg/math"
	"github.com/Faultbox/tidewater/pkg/wave"
)

// Stats summarizes a finished run.
type Stats struct {
	Ticks     int           // ticks that displaced the surface
	Skipped   int           // ticks skipped because no waves were active
	SimTime   float64       // simulated seconds at the last tick
	Elapsed   time.Duration // wall time spent ticking
	MinHeight float64
	MaxHeight float64
}

// PerTick returns the average wall time per tick.
func (s Stats) PerTick() time.Duration {
	n := s.Ticks + s.Skipped
	if n == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(n)
}

// Simulation owns the water surface and the deformer that animates it.
type Simulation struct {
	cfg      *config.Config
	surface  *water.Surface
	deformer *water.Deformer
	clock    *water.FixedStepClock
	log      *zap.Logger
}

// LoadWaveSet builds the wave set described by cfg: the configured wave
// file, or the seeded generator when no file is set.
func LoadWaveSet(cfg *config.Config) (*wave.Set, error) {
	policy := wave.Lenient
	if cfg.Simulation.Strict {
		policy = wave.Strict
	}

	if cfg.Water.WaveFile != "" {
		return formats.LoadWaveSet(cfg.Water.WaveFile, wave.WithPolicy(policy))
	}

	opts := wave.DefaultGenerateOptions()
	opts.Seed = cfg.Generator.Seed
	opts.Count = cfg.Generator.Count
	return wave.Generate(opts)
}

// IsConfigurationInvalid reports whether err means the waves were read but
// do not form a usable set. Such runs continue with a flat surface.
func IsConfigurationInvalid(err error) bool {
	return errors.Is(err, wave.ErrNoComponents) || errors.Is(err, wave.ErrInvalidComponent)
}

// New builds the surface and deformer. set may be nil, which leaves the
// surface at rest.
func New(cfg *config.Config, set *wave.Set, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}

	w := cfg.Water
	surface := water.BuildGridWithPadding(w.Width, w.Depth, w.SegmentsX, w.SegmentsZ, w.Level, w.Padding)

	deformer := water.NewDeformer(surface, tmath.IdentityTransform(), set,
		water.WithWorkers(cfg.Simulation.Workers),
		water.WithTimeScale(cfg.Simulation.TimeScale),
		water.WithLogger(log.Named("deformer")),
	)

	return &Simulation{
		cfg:      cfg,
		surface:  surface,
		deformer: deformer,
		clock:    water.NewFixedStepClock(cfg.Simulation.TickRate.Seconds()),
		log:      log,
	}
}

// Surface returns the animated surface.
func (s *Simulation) Surface() *water.Surface {
	return s.surface
}

// Deformer returns the deformer driving the surface.
func (s *Simulation) Deformer() *water.Deformer {
	return s.deformer
}

// Run ticks the simulation cfg.Simulation.Ticks times, stopping early when
// ctx is cancelled. The surface keeps the last completed frame.
func (s *Simulation) Run(ctx context.Context) (Stats, error) {
	stats := Stats{MinHeight: s.cfg.Water.Level, MaxHeight: s.cfg.Water.Level}
	start := time.Now()

	for i := 0; i < s.cfg.Simulation.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("stopped after %d ticks: %w", i, err)
		}

		stats.SimTime = s.clock.Now()
		if s.deformer.Step(s.clock) {
			stats.Ticks++
		} else {
			stats.Skipped++
		}
		s.clock.Advance()

		b := s.surface.Bounds()
		stats.MinHeight = min(stats.MinHeight, b.Min.Y)
		stats.MaxHeight = max(stats.MaxHeight, b.Max.Y)

		if (i+1)%progressEvery == 0 {
			s.log.Debug("progress",
				zap.Int("tick", i+1),
				zap.Float64("time", stats.SimTime),
				zap.Float64("min_y", b.Min.Y),
				zap.Float64("max_y", b.Max.Y),
			)
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

const progressEvery = 100
