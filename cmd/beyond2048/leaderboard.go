package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beyond2048/internal/platform/tui"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

var (
	flagSort  string
	flagLimit int
	flagTUI   bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	Long: `Display the top players.

Sort keys: bestScore, highestTile, winningStreak, gamesPlayed, totalWins.
Players without a finished game are not listed.

Examples:
  beyond2048 leaderboard
  beyond2048 leaderboard --sort winningStreak --limit 20
  beyond2048 leaderboard --tui`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&flagSort, "sort", string(storage.SortBestScore), "Sort key")
	leaderboardCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLeaderboardLimit, "Number of players to show (max 100)")
	leaderboardCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse interactively")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	sort, err := storage.ParseSortKey(flagSort)
	if err != nil {
		return fmt.Errorf("%w (valid: %s)", err, joinSortKeys())
	}
	if flagLimit < 1 || flagLimit > storage.MaxLeaderboardLimit {
		return fmt.Errorf("invalid --limit %d: must be between 1 and %d", flagLimit, storage.MaxLeaderboardLimit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagTUI {
		w, h := 80, 24
		if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			w, h = tw, th
		}
		return tui.RunLeaderboard(cmd.Context(), store, sort, w, h)
	}

	entries, err := store.Leaderboard(cmd.Context(), sort, flagLimit)
	if err != nil {
		return err
	}
	printLeaderboard(os.Stdout, sort, entries)
	return nil
}

func printLeaderboard(w io.Writer, sort storage.SortKey, entries []storage.LeaderboardEntry) {
	fmt.Fprintf(w, "Leaderboard - %s\n\n", sort)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'beyond2048 play' to claim the first spot!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %8s  %7s  %6s  %5s  %4s  %6s\n",
		"Rank", "Player", "Best", "Tile", "Streak", "Games", "Wins", "Win%")
	fmt.Fprintf(w, "  %-4s  %-16s  %8s  %7s  %6s  %5s  %4s  %6s\n",
		"----", "------", "----", "----", "------", "-----", "----", "----")
	for _, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-16s  %8d  %7d  %6d  %5d  %4d  %6s\n",
			e.Rank, truncate(e.Username, 16), e.BestScore, e.HighestTile,
			e.WinningStreak, e.GamesPlayed, e.TotalWins, e.WinRate)
	}
}

func joinSortKeys() string {
	keys := make([]string, len(storage.SortKeys))
	for i, k := range storage.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
