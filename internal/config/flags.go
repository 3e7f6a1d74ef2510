package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagUndoSteps = flag.Int("undo-steps", -1, "Maximum undo steps")
	flagPaused    = flag.Bool("paused", false, "Start with playback paused")
	flagSpeed     = flag.Float64("speed", 0, "Playback speed multiplier")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file")
	flagUser      = flag.String("user", "", "User id for change attribution")
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
	if *flagUndoSteps >= 0 {
		cfg.History.MaxUndoSteps = *flagUndoSteps
	}
	if *flagPaused {
		cfg.Animation.StartPaused = true
	}
	if *flagSpeed > 0 {
		cfg.Animation.PlaybackSpeed = float32(*flagSpeed)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagUser != "" {
		cfg.Session.User = *flagUser
	}
}
