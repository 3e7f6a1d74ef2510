package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Session.User != "local" {
		t.Errorf("expected default user 'local', got %s", cfg.Session.User)
	}

	if cfg.History.MaxUndoSteps != 100 {
		t.Errorf("expected max undo steps 100, got %d", cfg.History.MaxUndoSteps)
	}
	if cfg.History.MaxMemoryMB != 64 {
		t.Errorf("expected max memory 64 MB, got %d", cfg.History.MaxMemoryMB)
	}

	if cfg.Animation.PlaybackSpeed != 1.0 {
		t.Errorf("expected playback speed 1.0, got %f", cfg.Animation.PlaybackSpeed)
	}
	if cfg.Animation.StartPaused {
		t.Error("expected start_paused to be false by default")
	}

	if cfg.IK.MaxIterations != 10 {
		t.Errorf("expected IK iterations 10, got %d", cfg.IK.MaxIterations)
	}
	if cfg.IK.Tolerance != 0.001 {
		t.Errorf("expected IK tolerance 0.001, got %f", cfg.IK.Tolerance)
	}

	if cfg.Memory.ArenaSlabKB != 64 {
		t.Errorf("expected arena slab 64 KB, got %d", cfg.Memory.ArenaSlabKB)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "atelier.yaml")

	yamlContent := `
history:
  max_undo_steps: 250
  max_memory_mb: 128
  max_versions: 20

animation:
  playback_speed: 0.5
  default_fade_time: 0.1
  start_paused: true

ik:
  max_iterations: 32
  tolerance: 0.0001
  damping: 0.25

memory:
  arena_slab_kb: 256
  pool_block_size: 512
  max_objects: 10000

logging:
  level: "debug"
  log_file: "atelier.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.History.MaxUndoSteps != 250 {
		t.Errorf("expected max undo steps 250, got %d", cfg.History.MaxUndoSteps)
	}
	if cfg.History.MaxMemoryMB != 128 {
		t.Errorf("expected max memory 128, got %d", cfg.History.MaxMemoryMB)
	}
	if cfg.History.MaxVersions != 20 {
		t.Errorf("expected max versions 20, got %d", cfg.History.MaxVersions)
	}

	if cfg.Animation.PlaybackSpeed != 0.5 {
		t.Errorf("expected playback speed 0.5, got %f", cfg.Animation.PlaybackSpeed)
	}
	if !cfg.Animation.StartPaused {
		t.Error("expected start_paused to be true")
	}

	if cfg.IK.MaxIterations != 32 {
		t.Errorf("expected IK iterations 32, got %d", cfg.IK.MaxIterations)
	}
	if cfg.IK.Damping != 0.25 {
		t.Errorf("expected damping 0.25, got %f", cfg.IK.Damping)
	}

	if cfg.Memory.MaxObjects != 10000 {
		t.Errorf("expected max objects 10000, got %d", cfg.Memory.MaxObjects)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "atelier.log" {
		t.Errorf("expected log file 'atelier.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
history:
  max_undo_steps: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/atelier.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "atelier.yaml")
	if err := os.WriteFile(configPath, []byte("history:\n  max_undo_steps: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find atelier.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "undo steps flag",
			setup: func() {
				*flagUndoSteps = 500
			},
			verify: func(cfg *Config) {
				if cfg.History.MaxUndoSteps != 500 {
					t.Errorf("expected max undo steps 500, got %d", cfg.History.MaxUndoSteps)
				}
			},
			teardown: func() {
				*flagUndoSteps = -1
			},
		},
		{
			name: "zero undo steps flag",
			setup: func() {
				*flagUndoSteps = 0
			},
			verify: func(cfg *Config) {
				if cfg.History.MaxUndoSteps != 0 {
					t.Errorf("expected max undo steps 0, got %d", cfg.History.MaxUndoSteps)
				}
			},
			teardown: func() {
				*flagUndoSteps = -1
			},
		},
		{
			name: "paused flag",
			setup: func() {
				*flagPaused = true
			},
			verify: func(cfg *Config) {
				if !cfg.Animation.StartPaused {
					t.Error("expected start_paused to be true with paused flag")
				}
			},
			teardown: func() {
				*flagPaused = false
			},
		},
		{
			name: "speed flag",
			setup: func() {
				*flagSpeed = 2.0
			},
			verify: func(cfg *Config) {
				if cfg.Animation.PlaybackSpeed != 2.0 {
					t.Errorf("expected playback speed 2.0, got %f", cfg.Animation.PlaybackSpeed)
				}
			},
			teardown: func() {
				*flagSpeed = 0
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "session.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "session.log" {
					t.Errorf("expected log file 'session.log', got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
		{
			name: "user flag",
			setup: func() {
				*flagUser = "ana"
			},
			verify: func(cfg *Config) {
				if cfg.Session.User != "ana" {
					t.Errorf("expected user 'ana', got %s", cfg.Session.User)
				}
			},
			teardown: func() {
				*flagUser = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "atelier.yaml")

	yamlContent := `
history:
  max_undo_steps: 50
  max_memory_mb: 32
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagUndoSteps = 200
	defer func() {
		*flagConfig = ""
		*flagUndoSteps = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Undo steps from flag (200), not file (50)
	if cfg.History.MaxUndoSteps != 200 {
		t.Errorf("expected max undo steps 200 from flag, got %d", cfg.History.MaxUndoSteps)
	}

	// Memory from file (32) since no flag override
	if cfg.History.MaxMemoryMB != 32 {
		t.Errorf("expected max memory 32 from file, got %d", cfg.History.MaxMemoryMB)
	}
}
