package config

import (
	_ "embed"

	"github.com/vovakirdan/beyond2048/internal/board"
)

//go:embed defaults/beyond2048.yaml
var defaultYAML []byte

// DevJWTSecret signs tokens when no secret is configured. Fine for local
// play, never for a public server.
const DevJWTSecret = "beyond2048-dev-secret"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			BoardSize:        board.DefaultSize,
			FourProbability:  board.DefaultFourProbability,
			HistoryLimit:     100,
			AnimationDelayMS: 150,
		},
		Storage: StorageConfig{
			DBPath: "~/.beyond2048/beyond2048.db",
		},
		Server: ServerConfig{
			HTTPAddr:           ":8080",
			SSHAddr:            ":23234",
			HostKeyPath:        ".ssh/beyond2048_ed25519",
			IdleTimeoutMinutes: 30,
		},
		Auth: AuthConfig{
			TokenTTLHours: 720,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
