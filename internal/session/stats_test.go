package session

import (
	"testing"
	"time"

	"github.com/vovakirdan/beyond2048/internal/board"
)

func TestRecordAggregates(t *testing.T) {
	var s PlayerStats
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	games := []GameResult{
		{Score: 1000, HighestTile: 128, Moves: 100, Result: ResultLoss, TimePlayedSeconds: 60},
		{Score: 3000, HighestTile: 2048, Moves: 300, Result: ResultWin, Won: true, TimePlayedSeconds: 120},
		{Score: 2001, HighestTile: 2048, Moves: 250, Result: ResultWin, Won: true, TimePlayedSeconds: 30},
	}
	for i, g := range games {
		g.Timestamp = day.Add(time.Duration(i) * time.Hour)
		s.GamesPlayed++
		s.Record(g)
	}

	if s.BestScore != 3000 || s.HighestTile != 2048 {
		t.Errorf("BestScore = %d, HighestTile = %d, want 3000, 2048", s.BestScore, s.HighestTile)
	}
	if s.TotalMoves != 650 || s.TimePlayedSeconds != 210 {
		t.Errorf("TotalMoves = %d, TimePlayedSeconds = %d, want 650, 210", s.TotalMoves, s.TimePlayedSeconds)
	}
	if s.WinningStreak != 2 || s.TotalWins != 2 {
		t.Errorf("WinningStreak = %d, TotalWins = %d, want 2, 2", s.WinningStreak, s.TotalWins)
	}
	if s.AverageScore != 2000 {
		t.Errorf("AverageScore = %d, want 2000", s.AverageScore)
	}
	if len(s.RecentGames) != 3 || s.RecentGames[0].Score != 2001 {
		t.Errorf("RecentGames = %+v, want newest first", s.RecentGames)
	}

	s.GamesPlayed++
	s.Record(GameResult{Score: 10, Result: ResultLoss})
	if s.WinningStreak != 0 {
		t.Errorf("WinningStreak after loss = %d, want 0", s.WinningStreak)
	}
}

func TestRecordCapsRecentGames(t *testing.T) {
	var s PlayerStats
	for i := range MaxRecentGames + 5 {
		s.GamesPlayed++
		s.Record(GameResult{Score: i, Result: ResultLoss})
	}
	if len(s.RecentGames) != MaxRecentGames {
		t.Fatalf("len(RecentGames) = %d, want %d", len(s.RecentGames), MaxRecentGames)
	}
	if s.RecentGames[0].Score != MaxRecentGames+4 {
		t.Errorf("newest score = %d, want %d", s.RecentGames[0].Score, MaxRecentGames+4)
	}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		total, games, want int
	}{
		{0, 0, 0},
		{100, 0, 0},
		{10, 4, 3},
		{10, 3, 3},
		{11, 2, 6},
		{7000, 3, 2333},
	}
	for _, tt := range tests {
		if got := AverageScore(tt.total, tt.games); got != tt.want {
			t.Errorf("AverageScore(%d, %d) = %d, want %d", tt.total, tt.games, got, tt.want)
		}
	}
}

func TestFormatTimePlayed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 min"},
		{30, "0.5 min"},
		{600, "10 min"},
		{750, "12.5 min"},
		{3600, "1h"},
		{3900, "1h 5m"},
		{7199, "2h"},
	}
	for _, tt := range tests {
		if got := FormatTimePlayed(tt.seconds); got != tt.want {
			t.Errorf("FormatTimePlayed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestGameResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       GameResult
		wantErr bool
	}{
		{"valid loss", GameResult{Score: 10, HighestTile: 8, Moves: 3, Result: ResultLoss}, false},
		{"valid win", GameResult{Score: 20000, HighestTile: 2048, Result: ResultWin, Won: true}, false},
		{"negative score", GameResult{Score: -1, Result: ResultLoss}, true},
		{"negative moves", GameResult{Moves: -5, Result: ResultLoss}, true},
		{"unknown result", GameResult{Result: "draw"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHistoryBounds(t *testing.T) {
	b, _ := board.New(3)

	h := NewHistory(2)
	for i := range 3 {
		b[0][0] = 2 << i
		h.Push(b, i)
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	cp, _ := h.Pop()
	if cp.Score != 2 || cp.Board[0][0] != 8 {
		t.Errorf("Pop = %+v, want score 2", cp)
	}
	cp, _ = h.Pop()
	if cp.Score != 1 {
		t.Errorf("second Pop score = %d, want 1 (oldest dropped)", cp.Score)
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop on empty history should fail")
	}

	unbounded := NewHistory(-1)
	for i := range 500 {
		unbounded.Push(b, i)
	}
	if unbounded.Len() != 500 {
		t.Errorf("unbounded Len = %d, want 500", unbounded.Len())
	}
	unbounded.Clear()
	if unbounded.Len() != 0 {
		t.Error("Clear should empty the history")
	}
}

func TestHistoryStoresCopies(t *testing.T) {
	b, _ := board.New(3)
	b[1][1] = 4

	h := NewHistory(0)
	h.Push(b, 0)
	b[1][1] = 64

	cp, _ := h.Pop()
	if cp.Board[1][1] != 4 {
		t.Errorf("history entry changed with source board: %d", cp.Board[1][1])
	}
}

func TestChannelSinkDropsOldest(t *testing.T) {
	s := NewChannelSink(2)
	s.Send(StatsEvent{Stats: PlayerStats{GamesPlayed: 1}})
	s.Send(StatsEvent{Stats: PlayerStats{GamesPlayed: 2}})
	s.Send(StatsEvent{Stats: PlayerStats{GamesPlayed: 3}})

	got := s.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain returned %d events, want 2", len(got))
	}
	if first := got[0].(StatsEvent); first.Stats.GamesPlayed != 2 {
		t.Errorf("oldest kept event = %d, want 2", first.Stats.GamesPlayed)
	}

	s.Close()
	s.Close()
	s.Send(WinEvent{})
	if len(s.Drain()) != 0 {
		t.Error("closed sink should not accept events")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed")
	}
}

func TestMemoryPersistence(t *testing.T) {
	m := &MemoryPersistence{}
	ctx := t.Context()

	stats, err := m.SaveResult(ctx, GameResult{Score: 300, HighestTile: 32, Moves: 40, Result: ResultLoss})
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.BestScore != 300 {
		t.Errorf("stats = %+v", stats)
	}
	if _, err := m.SaveResult(ctx, GameResult{Result: "tie"}); err == nil {
		t.Error("SaveResult should reject invalid results")
	}

	_ = m.SaveHighScore(ctx, 100)
	_, high, _ := m.LoadStats(ctx)
	if high != 300 {
		t.Errorf("high score = %d, want 300", high)
	}
}
