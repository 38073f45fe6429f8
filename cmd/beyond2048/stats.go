package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beyond2048/internal/session"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

var (
	flagStatsUser string
	flagReset     bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or reset a profile's statistics",
	Long: `Display the statistics and recent games of a profile.

Examples:
  beyond2048 stats
  beyond2048 stats --user alice
  beyond2048 stats --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsUser, "user", "", "Profile name (default: OS user)")
	statsCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all games and zero the statistics")
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	username := localUsername(flagStatsUser)
	user, err := store.UserByUsername(cmd.Context(), username)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No profile named %q yet.\n", username)
		return nil
	}
	if err != nil {
		return err
	}

	if flagReset {
		if err := store.ResetStats(cmd.Context(), user.ID); err != nil {
			return err
		}
		fmt.Printf("Statistics for %s have been reset.\n", user.Username)
		return nil
	}

	sum, err := store.Stats(cmd.Context(), user.ID)
	if err != nil {
		return err
	}
	printStats(os.Stdout, user.Username, sum)
	return nil
}

func printStats(w io.Writer, username string, sum *storage.Summary) {
	fmt.Fprintf(w, "Statistics - %s\n\n", username)
	fmt.Fprintf(w, "  Games played:   %d\n", sum.GamesPlayed)
	fmt.Fprintf(w, "  Wins:           %d\n", sum.TotalWins)
	fmt.Fprintf(w, "  Winning streak: %d\n", sum.WinningStreak)
	fmt.Fprintf(w, "  Best score:     %d\n", sum.BestScore)
	fmt.Fprintf(w, "  Average score:  %d\n", sum.AverageScore)
	fmt.Fprintf(w, "  Highest tile:   %d\n", sum.HighestTile)
	fmt.Fprintf(w, "  Total moves:    %d\n", sum.TotalMoves)
	fmt.Fprintf(w, "  Time played:    %s\n", session.FormatTimePlayed(sum.TimePlayedSeconds))

	if len(sum.GameHistory) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent games")
	fmt.Fprintf(w, "  %-16s  %-4s  %8s  %6s  %5s\n", "Date", "Game", "Score", "Tile", "Moves")
	for _, g := range sum.GameHistory {
		fmt.Fprintf(w, "  %-16s  %-4s  %8d  %6d  %5d\n",
			g.Timestamp.Local().Format("2006-01-02 15:04"), g.Result, g.Score, g.HighestTile, g.Moves)
	}
}
