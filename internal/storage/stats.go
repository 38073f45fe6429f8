package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/beyond2048/internal/session"
)

// HistoryLimit is how many past games Stats returns.
const HistoryLimit = 20

// GameRecord is a stored finished game.
type GameRecord struct {
	ID string `json:"id"`
	session.GameResult
}

// Summary is a player's aggregate statistics plus recent game history.
type Summary struct {
	session.PlayerStats
	GameHistory []GameRecord `json:"gameHistory"`
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const aggregateColumns = `games_played, highest_tile, best_score, total_moves, total_score,
	time_played_secs, winning_streak, total_wins, average_score`

func loadAggregates(ctx context.Context, q querier, userID string) (session.PlayerStats, error) {
	var st session.PlayerStats
	err := q.QueryRowContext(ctx,
		`SELECT `+aggregateColumns+` FROM users WHERE id = ?`, userID,
	).Scan(
		&st.GamesPlayed,
		&st.HighestTile,
		&st.BestScore,
		&st.TotalMoves,
		&st.TotalScore,
		&st.TimePlayedSeconds,
		&st.WinningStreak,
		&st.TotalWins,
		&st.AverageScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNotFound
	}
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// RecordGame appends a finished game to the user's history and folds it
// into the aggregates in a single transaction.
func (s *Store) RecordGame(ctx context.Context, userID string, r session.GameResult) (*Summary, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	st, err := loadAggregates(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	st.GamesPlayed++
	st.Record(r)

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET
			games_played = ?, highest_tile = ?, best_score = ?, total_moves = ?, total_score = ?,
			time_played_secs = ?, winning_streak = ?, total_wins = ?, average_score = ?
		 WHERE id = ?`,
		st.GamesPlayed, st.HighestTile, st.BestScore, st.TotalMoves, st.TotalScore,
		st.TimePlayedSeconds, st.WinningStreak, st.TotalWins, st.AverageScore,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot update stats: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO game_results (id, user_id, score, highest_tile, moves, result, won, time_played_secs, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, r.Score, r.HighestTile, r.Moves, string(r.Result), r.Won,
		r.TimePlayedSeconds, r.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot save game: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit game: %w", err)
	}

	return s.Stats(ctx, userID)
}

// Stats returns the user's aggregates and their most recent games.
func (s *Store) Stats(ctx context.Context, userID string) (*Summary, error) {
	st, err := loadAggregates(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, highest_tile, moves, result, won, time_played_secs, played_at
		 FROM game_results
		 WHERE user_id = ?
		 ORDER BY played_at DESC, rowid DESC
		 LIMIT ?`,
		userID, HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	sum := &Summary{PlayerStats: st}
	for rows.Next() {
		var g GameRecord
		var result string
		var playedAt any
		if err := rows.Scan(&g.ID, &g.Score, &g.HighestTile, &g.Moves, &result, &g.Won,
			&g.TimePlayedSeconds, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Result = session.Result(result)
		g.Timestamp = parseTime(playedAt)
		sum.GameHistory = append(sum.GameHistory, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i, g := range sum.GameHistory {
		if i == session.MaxRecentGames {
			break
		}
		sum.RecentGames = append(sum.RecentGames, session.RecentGame{
			Date:        g.Timestamp,
			Result:      g.Result,
			Score:       g.Score,
			HighestTile: g.HighestTile,
		})
	}

	return sum, nil
}

// ResetStats zeroes the user's aggregates and deletes their game history.
func (s *Store) ResetStats(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET
			games_played = 0, highest_tile = 0, best_score = 0, total_moves = 0, total_score = 0,
			time_played_secs = 0, winning_streak = 0, total_wins = 0, average_score = 0
		 WHERE id = ?`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_results WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

// SetBestScore raises the user's best score; a lower score is ignored.
func (s *Store) SetBestScore(ctx context.Context, userID string, score int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET best_score = MAX(best_score, ?) WHERE id = ?`,
		score, userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
