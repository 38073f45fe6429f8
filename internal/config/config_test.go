package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(defaultYAML, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if err := fromYAML.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}

	def := Default()
	if fromYAML.Game != def.Game {
		t.Errorf("embedded game config = %+v, want %+v", fromYAML.Game, def.Game)
	}
	if fromYAML.Storage != def.Storage || fromYAML.Auth != def.Auth || fromYAML.Log != def.Log {
		t.Errorf("embedded config = %+v, want %+v", fromYAML, def)
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "game:\n  board_size: 6\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.BoardSize != 6 || cfg.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Game.HistoryLimit != 100 || cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("unset values lost their defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing custom path")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("game: [not a map"), 0o644)
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Load(bad yaml) error = %v", err)
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	os.WriteFile(invalid, []byte("game:\n  board_size: 9\n"), 0o644)
	if _, err := Load(invalid); err == nil {
		t.Error("Load should reject board_size 9")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvJWTSecret: "topsecret",
		EnvDBPath:    "/tmp/x.db",
		EnvHTTPAddr:  ":9999",
		EnvLogLevel:  "warn",
		EnvBoardSize: "5",
	}
	cfg := Default()
	if err := applyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}

	if cfg.Auth.JWTSecret != "topsecret" || cfg.Storage.DBPath != "/tmp/x.db" ||
		cfg.Server.HTTPAddr != ":9999" || cfg.Log.Level != "warn" || cfg.Game.BoardSize != 5 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Server.SSHAddr != ":23234" {
		t.Errorf("unset env var changed SSHAddr to %q", cfg.Server.SSHAddr)
	}

	env[EnvBoardSize] = "big"
	if err := applyEnv(&cfg, func(k string) string { return env[k] }); err == nil {
		t.Error("applyEnv should reject a non-numeric board size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"size 3", func(c *Config) { c.Game.BoardSize = 3 }, true},
		{"size 2", func(c *Config) { c.Game.BoardSize = 2 }, false},
		{"size 7", func(c *Config) { c.Game.BoardSize = 7 }, false},
		{"probability above 1", func(c *Config) { c.Game.FourProbability = 1.2 }, false},
		{"negative probability", func(c *Config) { c.Game.FourProbability = -0.1 }, false},
		{"negative history", func(c *Config) { c.Game.HistoryLimit = -1 }, false},
		{"negative delay", func(c *Config) { c.Game.AnimationDelayMS = -5 }, false},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok %v", err, tt.ok)
			}
		})
	}
}

func TestJWTSecretFallback(t *testing.T) {
	cfg := Default()
	if secret, ok := cfg.JWTSecret(); ok || secret != DevJWTSecret {
		t.Errorf("JWTSecret() = %q, %v, want dev secret", secret, ok)
	}
	cfg.Auth.JWTSecret = "real"
	if secret, ok := cfg.JWTSecret(); !ok || secret != "real" {
		t.Errorf("JWTSecret() = %q, %v", secret, ok)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if got := cfg.Game.AnimationDelay().Milliseconds(); got != 150 {
		t.Errorf("AnimationDelay = %dms, want 150", got)
	}
	if got := cfg.Auth.TokenTTL().Hours(); got != 720 {
		t.Errorf("TokenTTL = %vh, want 720", got)
	}
	if got := cfg.Server.IdleTimeout().Minutes(); got != 30 {
		t.Errorf("IdleTimeout = %vm, want 30", got)
	}
}
