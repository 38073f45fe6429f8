package storage

import (
	"context"

	"github.com/vovakirdan/beyond2048/internal/session"
)

// PlayerStore binds a Store to one user so a session controller can load
// and save that user's statistics.
type PlayerStore struct {
	store  *Store
	userID string
}

// Player returns the persistence port for userID.
func (s *Store) Player(userID string) *PlayerStore {
	return &PlayerStore{store: s, userID: userID}
}

// UserID returns the bound user.
func (p *PlayerStore) UserID() string {
	return p.userID
}

// LoadStats implements session.Persistence.
func (p *PlayerStore) LoadStats(ctx context.Context) (session.PlayerStats, int, error) {
	sum, err := p.store.Stats(ctx, p.userID)
	if err != nil {
		return session.PlayerStats{}, 0, err
	}
	return sum.PlayerStats, sum.BestScore, nil
}

// SaveResult implements session.Persistence.
func (p *PlayerStore) SaveResult(ctx context.Context, r session.GameResult) (session.PlayerStats, error) {
	sum, err := p.store.RecordGame(ctx, p.userID, r)
	if err != nil {
		return session.PlayerStats{}, err
	}
	return sum.PlayerStats, nil
}

// SaveHighScore implements session.Persistence.
func (p *PlayerStore) SaveHighScore(ctx context.Context, score int) error {
	return p.store.SetBestScore(ctx, p.userID, score)
}

var _ session.Persistence = (*PlayerStore)(nil)
