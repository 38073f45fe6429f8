// Package config provides YAML-based configuration loading for beyond2048,
// with environment and .env overrides for deployment secrets.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beyond2048/internal/board"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig controls board and session behaviour.
type GameConfig struct {
	BoardSize        int     `yaml:"board_size"`
	FourProbability  float64 `yaml:"four_probability"`
	HistoryLimit     int     `yaml:"history_limit"`
	AnimationDelayMS int     `yaml:"animation_delay_ms"`
}

// AnimationDelay returns the configured pause between a slide and its spawn.
func (g GameConfig) AnimationDelay() time.Duration {
	return time.Duration(g.AnimationDelayMS) * time.Millisecond
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig holds the HTTP and SSH listener settings.
type ServerConfig struct {
	HTTPAddr           string   `yaml:"http_addr"`
	SSHAddr            string   `yaml:"ssh_addr"`
	HostKeyPath        string   `yaml:"host_key_path"`
	IdleTimeoutMinutes int      `yaml:"idle_timeout_minutes"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// AuthConfig configures token signing.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// TokenTTL returns how long issued tokens stay valid.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ParsedLevel returns the log level, InfoLevel when unset.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(l.Level)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !board.ValidSize(c.Game.BoardSize) {
		return fmt.Errorf("config: game.board_size %d must be between %d and %d",
			c.Game.BoardSize, board.MinSize, board.MaxSize)
	}
	if c.Game.FourProbability < 0 || c.Game.FourProbability > 1 {
		return fmt.Errorf("config: game.four_probability %v must be within [0, 1]", c.Game.FourProbability)
	}
	if c.Game.HistoryLimit < 0 {
		return fmt.Errorf("config: game.history_limit %d must not be negative", c.Game.HistoryLimit)
	}
	if c.Game.AnimationDelayMS < 0 {
		return fmt.Errorf("config: game.animation_delay_ms %d must not be negative", c.Game.AnimationDelayMS)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is required")
	}
	if c.Auth.TokenTTLHours < 0 {
		return fmt.Errorf("config: auth.token_ttl_hours %d must not be negative", c.Auth.TokenTTLHours)
	}
	if _, err := c.Log.ParsedLevel(); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
