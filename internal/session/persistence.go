package session

import "context"

// Persistence is where a session loads and stores player data. Calls happen
// at session start, when a game ends, and on an explicit Save; never per move.
type Persistence interface {
	LoadStats(ctx context.Context) (PlayerStats, int, error) // stats and high score
	SaveResult(ctx context.Context, result GameResult) (PlayerStats, error)
	SaveHighScore(ctx context.Context, score int) error
}

// MemoryPersistence keeps everything in process. Used for anonymous play.
type MemoryPersistence struct {
	stats     PlayerStats
	highScore int
}

// LoadStats implements Persistence.
func (m *MemoryPersistence) LoadStats(context.Context) (PlayerStats, int, error) {
	return m.stats.Clone(), m.highScore, nil
}

// SaveResult implements Persistence.
func (m *MemoryPersistence) SaveResult(_ context.Context, r GameResult) (PlayerStats, error) {
	if err := r.Validate(); err != nil {
		return PlayerStats{}, err
	}
	m.stats.GamesPlayed++
	m.stats.Record(r)
	m.highScore = max(m.highScore, r.Score)
	return m.stats.Clone(), nil
}

// SaveHighScore implements Persistence.
func (m *MemoryPersistence) SaveHighScore(_ context.Context, score int) error {
	m.highScore = max(m.highScore, score)
	return nil
}
