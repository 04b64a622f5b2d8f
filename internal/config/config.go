// Package config handles simulator configuration loading and management.
package config

import "time"

// Config holds all simulator settings.
type Config struct {
	Water      WaterConfig      `yaml:"water"`
	Simulation SimulationConfig `yaml:"simulation"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WaterConfig describes the water surface and where its waves come from.
type WaterConfig struct {
	WaveFile  string  `yaml:"wave_file"` // JSON or YAML wave file; empty uses the generator
	Width     float64 `yaml:"width"`
	Depth     float64 `yaml:"depth"`
	SegmentsX int     `yaml:"segments_x"`
	SegmentsZ int     `yaml:"segments_z"`
	Level     float64 `yaml:"level"`
	Padding   float64 `yaml:"padding"`
}

// SimulationConfig controls the tick loop.
type SimulationConfig struct {
	TimeScale float64       `yaml:"time_scale"`
	TickRate  time.Duration `yaml:"tick_rate"` // simulated time per tick
	Ticks     int           `yaml:"ticks"`
	Workers   int           `yaml:"workers"`
	Strict    bool          `yaml:"strict"` // reject malformed wave components
}

// GeneratorConfig seeds the procedural wave generator.
type GeneratorConfig struct {
	Seed  uint64 `yaml:"seed"`
	Count int    `yaml:"count"`
}

// OutputConfig holds export paths.
type OutputConfig struct {
	OBJPath string `yaml:"obj_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Water: WaterConfig{
			WaveFile:  "",
			Width:     64,
			Depth:     64,
			SegmentsX: 128,
			SegmentsZ: 128,
			Level:     0,
			Padding:   0,
		},
		Simulation: SimulationConfig{
			TimeScale: 1,
			TickRate:  time.Second / 60,
			Ticks:     600,
			Workers:   1,
			Strict:    false,
		},
		Generator: GeneratorConfig{
			Seed:  42,
			Count: 6,
		},
		Output: OutputConfig{
			OBJPath: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
