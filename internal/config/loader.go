package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvJWTSecret = "BEYOND2048_JWT_SECRET"
	EnvDBPath    = "BEYOND2048_DB"
	EnvHTTPAddr  = "BEYOND2048_HTTP_ADDR"
	EnvSSHAddr   = "BEYOND2048_SSH_ADDR"
	EnvLogLevel  = "BEYOND2048_LOG_LEVEL"
	EnvBoardSize = "BEYOND2048_BOARD_SIZE"
)

// Load reads configuration.
// Search order: customPath -> ~/.beyond2048/config.yaml -> ./configs/beyond2048.yaml -> embedded default.
// Values missing from the chosen file keep their defaults. A .env file in
// the working directory, if any, is loaded before environment overrides
// are applied.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if err := readInto(&cfg, customPath); err != nil {
		return cfg, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readInto(cfg *Config, customPath string) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "beyond2048.yaml")); err == nil {
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		*cfg = Default() // Fallback to hardcoded if embed fails
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beyond2048", filename)
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := getenv(EnvDBPath); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := getenv(EnvHTTPAddr); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := getenv(EnvSSHAddr); v != "" {
		cfg.Server.SSHAddr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvBoardSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvBoardSize, err)
		}
		cfg.Game.BoardSize = n
	}
	return nil
}

// JWTSecret returns the configured signing secret, or DevJWTSecret and
// false when none is set.
func (c Config) JWTSecret() (string, bool) {
	if c.Auth.JWTSecret == "" {
		return DevJWTSecret, false
	}
	return c.Auth.JWTSecret, true
}
