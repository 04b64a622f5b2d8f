package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWaves   = flag.String("waves", "", "Wave file (.json or .yaml)")
	flagTicks   = flag.Int("ticks", 0, "Number of ticks to simulate")
	flagWorkers = flag.Int("workers", 0, "Goroutines per tick")
	flagStrict  = flag.Bool("strict", false, "Reject malformed wave components")
	flagOBJ     = flag.String("obj", "", "Write the final frame as Wavefront OBJ")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWaves != "" {
		cfg.Water.WaveFile = *flagWaves
	}
	if *flagTicks > 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagWorkers > 0 {
		cfg.Simulation.Workers = *flagWorkers
	}
	if *flagStrict {
		cfg.Simulation.Strict = true
	}
	if *flagOBJ != "" {
		cfg.Output.OBJPath = *flagOBJ
	}
}
