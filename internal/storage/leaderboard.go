package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidSort is returned for an unknown leaderboard ordering.
var ErrInvalidSort = errors.New("storage: invalid sort parameter")

// Leaderboard limits.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// SortKey selects the leaderboard ordering.
type SortKey string

const (
	SortBestScore     SortKey = "bestScore"
	SortHighestTile   SortKey = "highestTile"
	SortWinningStreak SortKey = "winningStreak"
	SortGamesPlayed   SortKey = "gamesPlayed"
	SortTotalWins     SortKey = "totalWins"
)

// SortKeys lists the accepted orderings.
var SortKeys = []SortKey{SortBestScore, SortHighestTile, SortWinningStreak, SortGamesPlayed, SortTotalWins}

var sortColumns = map[SortKey]string{
	SortBestScore:     "best_score",
	SortHighestTile:   "highest_tile",
	SortWinningStreak: "winning_streak",
	SortGamesPlayed:   "games_played",
	SortTotalWins:     "total_wins",
}

// ParseSortKey validates s. An empty string selects SortBestScore.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortBestScore, nil
	}
	if _, ok := sortColumns[SortKey(s)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return SortKey(s), nil
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	BestScore     int    `json:"bestScore"`
	HighestTile   int    `json:"highestTile"`
	WinningStreak int    `json:"winningStreak"`
	GamesPlayed   int    `json:"gamesPlayed"`
	TotalWins     int    `json:"totalWins"`
	AverageScore  int    `json:"averageScore"`
	WinRate       string `json:"winRate"`
}

// Leaderboard ranks players by the given key, ties broken by best score.
// Players with no finished games are left out.
func (s *Store) Leaderboard(ctx context.Context, sort SortKey, limit int) ([]LeaderboardEntry, error) {
	col, ok := sortColumns[sort]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	limit = min(limit, MaxLeaderboardLimit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT username, name, best_score, highest_tile, winning_streak, games_played, total_wins, average_score
		 FROM users
		 WHERE games_played > 0
		 ORDER BY `+col+` DESC, best_score DESC, username ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Name, &e.BestScore, &e.HighestTile,
			&e.WinningStreak, &e.GamesPlayed, &e.TotalWins, &e.AverageScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.WinRate = winRate(e.TotalWins, e.GamesPlayed)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func winRate(wins, games int) string {
	if games <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(wins)/float64(games)*100)
}
