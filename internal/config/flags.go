package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Also write logs to this file")
	flagWorkers = flag.Int("workers", 0, "Concurrent decodes (0 = config or one per CPU)")
	flagSeed    = flag.Int64("seed", 0, "LOD shuffle seed (default from config)")
	flagTarget  = flag.Int("target", 0, "Default triangle budget (0 = config)")
	flagRoot    = flag.String("root", "", "Asset root directory, searched before configured roots")
	flagWatch   = flag.Bool("watch", false, "Watch asset roots for changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// setFlags returns the names of flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. set holds the flags
// given explicitly; it lets zero-valued flags such as -seed 0 override.
func applyFlags(cfg *Config, set map[string]bool) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWorkers > 0 {
		cfg.Scheduler.Workers = *flagWorkers
	}
	if set["seed"] {
		cfg.LOD.Seed = *flagSeed
	}
	if *flagTarget > 0 {
		cfg.LOD.DefaultTargetFaces = *flagTarget
	}
	if *flagRoot != "" {
		cfg.Assets.Roots = append([]string{*flagRoot}, cfg.Assets.Roots...)
	}
	if *flagWatch {
		cfg.Assets.Watch = true
	}
}
