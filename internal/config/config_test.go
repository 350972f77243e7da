package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded default = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, LocalPath), "game:\n  max_turns: 7\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxTurns != 7 {
		t.Errorf("local config: MaxTurns = %d, expected 7", cfg.Game.MaxTurns)
	}
	if cfg.Game.WinningScore != 100 {
		t.Errorf("partial file should keep defaults, WinningScore = %d", cfg.Game.WinningScore)
	}

	writeFile(t, filepath.Join(home, ".trio", "config.yaml"), "game:\n  max_turns: 4\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxTurns != 4 {
		t.Errorf("user config should win over local: MaxTurns = %d, expected 4", cfg.Game.MaxTurns)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "game:\n  max_turns: 2\n  names: [Ann, Bob, Cid]\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxTurns != 2 {
		t.Errorf("custom config: MaxTurns = %d, expected 2", cfg.Game.MaxTurns)
	}
	if !reflect.DeepEqual(cfg.Game.Names, []string{"Ann", "Bob", "Cid"}) {
		t.Errorf("custom config: Names = %v", cfg.Game.Names)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "game: [not, a, map\n")
	if _, err := Load(bad); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}
}

func TestLoadInvalidUserFileIsSkipped(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".trio", "config.yaml"), "::: nonsense [")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxTurns != 10 {
		t.Errorf("MaxTurns = %d, expected default 10", cfg.Game.MaxTurns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TRIO_MAX_TURNS", "3")
	t.Setenv("TRIO_STRICT", "true")
	t.Setenv("TRIO_NAMES", "Ann,Bob,Cid")
	t.Setenv("TRIO_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxTurns != 3 {
		t.Errorf("MaxTurns = %d, expected 3", cfg.Game.MaxTurns)
	}
	if !cfg.Game.Strict {
		t.Error("Strict should be set from TRIO_STRICT")
	}
	if !reflect.DeepEqual(cfg.Game.Names, []string{"Ann", "Bob", "Cid"}) {
		t.Errorf("Names = %v", cfg.Game.Names)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TRIO_WINNING_SCORE", "0")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"zero winning score", func(c *Config) { c.Game.WinningScore = 0 }, false},
		{"negative max turns", func(c *Config) { c.Game.MaxTurns = -1 }, false},
		{"two names", func(c *Config) { c.Game.Names = []string{"A", "B"} }, false},
		{"blank name", func(c *Config) { c.Game.Names[1] = "  " }, false},
		{"empty variant", func(c *Config) { c.Game.Variant = "" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"no db path", func(c *Config) { c.Storage.DBPath = "" }, false},
		{"no db path but disabled", func(c *Config) {
			c.Storage.DBPath = ""
			c.Storage.Disabled = true
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := Default()
	cfg.Game.Names = []string{" Ann ", "Bob", "Cid"}
	cfg.Game.Seed = 42
	cfg.Game.Strict = true
	cfg.Game.MaxTurns = 6

	rc := cfg.RuntimeConfig()
	if rc.Names != [3]string{"Ann", "Bob", "Cid"} {
		t.Errorf("Names = %v", rc.Names)
	}
	if rc.Seed != 42 || !rc.Strict || rc.MaxTurns != 6 || rc.WinningScore != 100 {
		t.Errorf("RuntimeConfig() = %+v", rc)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in           string
		winningScore int
		maxTurns     int
	}{
		{"quick", 50, 5},
		{"Standard", 100, 10},
		{" marathon ", 200, 30},
	}

	for _, tt := range tests {
		p, err := ParsePreset(tt.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", tt.in, err)
		}
		cfg := Default()
		cfg.ApplyPreset(p)
		if cfg.Game.WinningScore != tt.winningScore || cfg.Game.MaxTurns != tt.maxTurns {
			t.Errorf("ApplyPreset(%s) = (%d, %d), expected (%d, %d)",
				p, cfg.Game.WinningScore, cfg.Game.MaxTurns, tt.winningScore, tt.maxTurns)
		}
	}

	if _, err := ParsePreset("endless"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(endless) error = %v, expected ErrInvalidConfig", err)
	}
}
