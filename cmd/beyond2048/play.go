package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/beyond2048/internal/board"
	"github.com/vovakirdan/beyond2048/internal/platform/tui"
)

var (
	flagSize int
	flagUser string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a local game. Without --size a menu lets you pick the board.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  U                 - Undo the last move
  N                 - New game
  Esc/B             - Back to the menu
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Statistics are kept per profile in the database. The profile defaults to
your OS user name.

Examples:
  beyond2048 play
  beyond2048 play --size 6
  beyond2048 play --user alice --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size 3-6 (skips the menu)")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Profile name (default: OS user)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagSize != 0 && !board.ValidSize(flagSize) {
		return fmt.Errorf("invalid --size %d: must be between %d and %d", flagSize, board.MinSize, board.MaxSize)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Play continues without persistence when the database is unavailable.
	opts := tui.AppOptions{
		Context: cmd.Context(),
		Config:  runtimeConfig(cfg),
		Game: tui.GameOptions{
			Size:            flagSize,
			FourProbability: cfg.Game.FourProbability,
			HistoryLimit:    cfg.Game.HistoryLimit,
		},
		// The alt screen owns the terminal; log lines would corrupt it.
		Logger: log.New(io.Discard),
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer store.Close()
		opts.Store = store
		opts.Username = localUsername(flagUser)
	}

	return tui.Run(opts)
}
