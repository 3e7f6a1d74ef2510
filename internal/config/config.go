// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Session   SessionConfig   `yaml:"session"`
	History   HistoryConfig   `yaml:"history"`
	Animation AnimationConfig `yaml:"animation"`
	IK        IKConfig        `yaml:"ik"`
	Memory    MemoryConfig    `yaml:"memory"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SessionConfig identifies the editing session's user for change
// attribution.
type SessionConfig struct {
	User string `yaml:"user"`
}

// HistoryConfig bounds the undo system.
type HistoryConfig struct {
	MaxUndoSteps int `yaml:"max_undo_steps"`
	MaxMemoryMB  int `yaml:"max_memory_mb"`
	MaxVersions  int `yaml:"max_versions"`
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	PlaybackSpeed   float32 `yaml:"playback_speed"`
	DefaultFadeTime float32 `yaml:"default_fade_time"`
	FixedTimestep   float32 `yaml:"fixed_timestep"`
	StartPaused     bool    `yaml:"start_paused"`
}

// IKConfig holds solver tuning.
type IKConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float32 `yaml:"tolerance"`
	Damping       float32 `yaml:"damping"`
}

// MemoryConfig holds allocation substrate sizing.
type MemoryConfig struct {
	ArenaSlabKB   int `yaml:"arena_slab_kb"`
	PoolBlockSize int `yaml:"pool_block_size"`
	MaxObjects    int `yaml:"max_objects"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			User: "local",
		},
		History: HistoryConfig{
			MaxUndoSteps: 100,
			MaxMemoryMB:  64,
			MaxVersions:  50,
		},
		Animation: AnimationConfig{
			PlaybackSpeed:   1.0,
			DefaultFadeTime: 0.25,
			FixedTimestep:   1.0 / 60.0,
			StartPaused:     false,
		},
		IK: IKConfig{
			MaxIterations: 10,
			Tolerance:     0.001,
			Damping:       0.5,
		},
		Memory: MemoryConfig{
			ArenaSlabKB:   64,
			PoolBlockSize: 256,
			MaxObjects:    0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
