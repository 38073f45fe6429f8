package session

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxRecentGames caps the per-player recent game log kept in memory.
const MaxRecentGames = 10

// Result is the outcome label of a finished game.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// GameResult is emitted when a game ends and handed to persistence.
type GameResult struct {
	Score             int       `json:"score"`
	HighestTile       int       `json:"highestTile"`
	Moves             int       `json:"moves"`
	Result            Result    `json:"result"`
	Won               bool      `json:"won"`
	TimePlayedSeconds int       `json:"timePlayedSeconds"`
	Timestamp         time.Time `json:"timestamp"`
}

// Validate checks the fields a stored result must carry.
func (r GameResult) Validate() error {
	switch {
	case r.Score < 0:
		return fmt.Errorf("session: negative score %d", r.Score)
	case r.HighestTile < 0:
		return fmt.Errorf("session: negative highest tile %d", r.HighestTile)
	case r.Moves < 0:
		return fmt.Errorf("session: negative move count %d", r.Moves)
	case r.TimePlayedSeconds < 0:
		return fmt.Errorf("session: negative time played %d", r.TimePlayedSeconds)
	case r.Result != ResultWin && r.Result != ResultLoss:
		return fmt.Errorf("session: unknown result %q", r.Result)
	}
	return nil
}

// RecentGame is one entry of the recent game log.
type RecentGame struct {
	Date        time.Time `json:"date"`
	Result      Result    `json:"result"`
	Score       int       `json:"score"`
	HighestTile int       `json:"highestTile"`
}

// PlayerStats aggregates a player's history across games.
type PlayerStats struct {
	GamesPlayed       int          `json:"gamesPlayed"`
	HighestTile       int          `json:"highestTile"`
	BestScore         int          `json:"bestScore"`
	TotalMoves        int          `json:"totalMoves"`
	TotalScore        int          `json:"totalScore"`
	TimePlayedSeconds int          `json:"timePlayedSeconds"`
	WinningStreak     int          `json:"winningStreak"`
	TotalWins         int          `json:"totalWins"`
	AverageScore      int          `json:"averageScore"`
	RecentGames       []RecentGame `json:"recentGames"`
}

// Record folds a finished game into the aggregates. GamesPlayed is not
// touched here; it is counted when a game starts.
func (s *PlayerStats) Record(r GameResult) {
	s.TotalMoves += r.Moves
	s.TotalScore += r.Score
	s.TimePlayedSeconds += r.TimePlayedSeconds
	s.BestScore = max(s.BestScore, r.Score)
	s.HighestTile = max(s.HighestTile, r.HighestTile)

	if r.Result == ResultWin {
		s.WinningStreak++
		s.TotalWins++
	} else {
		s.WinningStreak = 0
	}

	s.AverageScore = AverageScore(s.TotalScore, s.GamesPlayed)

	s.RecentGames = append([]RecentGame{{
		Date:        r.Timestamp,
		Result:      r.Result,
		Score:       r.Score,
		HighestTile: r.HighestTile,
	}}, s.RecentGames...)
	if len(s.RecentGames) > MaxRecentGames {
		s.RecentGames = s.RecentGames[:MaxRecentGames]
	}
}

// Clone returns a copy that shares no slices with s.
func (s PlayerStats) Clone() PlayerStats {
	out := s
	out.RecentGames = append([]RecentGame(nil), s.RecentGames...)
	return out
}

// AverageScore rounds total/games to the nearest integer, 0 when no games.
func AverageScore(total, games int) int {
	if games <= 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(games)))
}

// FormatTimePlayed renders seconds as "12.5 min" below an hour and "2h 5m" above.
func FormatTimePlayed(seconds int) string {
	minutes := math.Round(float64(seconds)/60*100) / 100
	if minutes < 60 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", minutes), ".0") + " min"
	}
	hours := int(minutes) / 60
	mins := int(math.Round(math.Mod(minutes, 60)))
	if mins == 60 {
		hours++
		mins = 0
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
