// beyond2048 is the 2048 sliding-tile game for boards from 3x3 to 6x6, played
// in the terminal, over SSH, or through an HTTP/WebSocket API.
//
// Usage:
//
//	beyond2048 play                - Pick a board size and play locally
//	beyond2048 serve               - Start the SSH server for remote play
//	beyond2048 api                 - Start the HTTP API and WebSocket play server
//	beyond2048 leaderboard         - Print the leaderboard
//	beyond2048 stats               - Show a local profile's statistics
//
// Global flags:
//
//	--config <path>    - Config file (default: ~/.beyond2048/config.yaml)
//	--db <path>        - Database path (overrides the config file)
//	--seed <value>     - RNG seed for reproducible tile spawns
//	--fps <rate>       - Redraw rate while tiles slide (default: 60)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beyond2048",
	Short: "2048 for boards from 3x3 to 6x6",
	Long: `beyond2048 is the 2048 sliding-tile puzzle for boards from 3x3 to 6x6.

Slide tiles, merge equal neighbours and reach 2048. Play keeps going after
the win until the board locks up. Finished games feed per-player statistics
and a shared leaderboard.

Available commands:
  play         - Play in this terminal
  serve        - Start the SSH server for remote play
  api          - Start the HTTP API with WebSocket play
  leaderboard  - Show the leaderboard
  stats        - Show or reset a profile's statistics

Examples:
  beyond2048 play
  beyond2048 play --size 5 --user alice
  beyond2048 serve --ssh :2222
  beyond2048 api --addr :8080
  beyond2048 leaderboard --sort highestTile`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate while tiles slide")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
}
