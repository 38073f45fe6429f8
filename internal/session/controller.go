// Package session drives a single game of 2048 on top of the board engine.
//
// A Controller owns one board and its score, an undo history, and the
// player's cached statistics. A turn is split in two: ApplyMove commits the
// slide and puts the controller in StateAnimating, and Settle spawns the
// next tile and decides whether the game is over. Presentation code decides
// how long to wait between the two; headless callers use Turn.
//
// A Controller is not safe for concurrent use. It is meant to be owned by a
// single update loop (a Bubble Tea model, a websocket read loop).
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beyond2048/internal/board"
)

// State is the controller's position in the turn cycle.
type State string

const (
	StateReady     State = "ready"
	StateAnimating State = "animating"
	StateOver      State = "over"
)

// ErrAnimating is returned by NewGame while a move is still settling.
var ErrAnimating = errors.New("session: move in progress")

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Size            int     // board dimension, DefaultSize when 0
	HistoryLimit    int     // undo depth, DefaultHistoryLimit when 0, unbounded when negative
	FourProbability float64 // chance of spawning a 4, board.DefaultFourProbability when 0
	Seed            int64   // RNG seed, time based when 0
	Rand            board.Source
	Board           board.Board // opening position of the first game, two random tiles when nil

	Persistence Persistence
	Sink        EventSink
	Logger      *log.Logger
	Clock       func() time.Time
}

// Frame describes what the last transition did to the board, for drawing.
type Frame struct {
	Direction board.Direction  `json:"direction"`
	Merged    []board.Coord    `json:"merged"`
	Spawned   []board.Spawned  `json:"spawned"`
	Moves     []board.TileMove `json:"moves"`
}

// IsMerged reports whether c holds a tile produced by the last move.
func (f Frame) IsMerged(c board.Coord) bool {
	for _, m := range f.Merged {
		if m == c {
			return true
		}
	}
	return false
}

// IsNew reports whether c holds a freshly spawned tile.
func (f Frame) IsNew(c board.Coord) bool {
	for _, s := range f.Spawned {
		if s.At == c {
			return true
		}
	}
	return false
}

// Positions returns tile movements keyed by origin "row-col".
func (f Frame) Positions() map[string]board.TileMove {
	out := make(map[string]board.TileMove, len(f.Moves))
	for _, m := range f.Moves {
		out[m.From.Key()] = m
	}
	return out
}

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	Board      board.Board `json:"board"`
	Size       int         `json:"size"`
	Score      int         `json:"score"`
	HighScore  int         `json:"highScore"`
	State      State       `json:"state"`
	Won        bool        `json:"won"`
	Over       bool        `json:"gameOver"`
	Moves      int         `json:"moves"`
	HistoryLen int         `json:"historyLength"`
}

// Controller runs one game at a time.
type Controller struct {
	logger   *log.Logger
	rng      board.Source
	fourProb float64
	store    Persistence
	sink     EventSink
	now      func() time.Time

	size      int
	board     board.Board
	score     int
	highScore int
	history   *History
	state     State
	won       bool
	over      bool
	moves     int
	startedAt time.Time
	finalized bool
	stats     PlayerStats
	frame     Frame
	opening   board.Board
}

// New creates a controller with an empty board. Call Start (or NewGame) to
// place the opening tiles.
func New(opts Options) (*Controller, error) {
	size := opts.Size
	if opts.Board != nil {
		if !board.Valid(opts.Board) {
			return nil, fmt.Errorf("session: invalid opening board")
		}
		size = len(opts.Board)
	}
	if size == 0 {
		size = board.DefaultSize
	}
	b, err := board.New(size)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	if opts.FourProbability < 0 || opts.FourProbability > 1 {
		return nil, fmt.Errorf("session: four probability %v out of range", opts.FourProbability)
	}
	fourProb := opts.FourProbability
	if fourProb == 0 {
		fourProb = board.DefaultFourProbability
	}

	limit := opts.HistoryLimit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	c := &Controller{
		logger:   opts.Logger,
		rng:      rng,
		fourProb: fourProb,
		store:    opts.Persistence,
		sink:     opts.Sink,
		now:      opts.Clock,
		size:     size,
		board:    b,
		history:  NewHistory(limit),
		state:    StateReady,
	}
	if opts.Board != nil {
		c.opening = opts.Board.Clone()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.store == nil {
		c.store = &MemoryPersistence{}
	}
	if c.sink == nil {
		c.sink = NopSink{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.startedAt = c.now()
	return c, nil
}

// Start loads the player's stats and begins the first game. A failed load
// is logged and play continues with empty stats.
func (c *Controller) Start(ctx context.Context) error {
	stats, high, err := c.store.LoadStats(ctx)
	if err != nil {
		c.logger.Warn("could not load player stats", "err", err)
	} else {
		c.stats = stats
		c.highScore = max(c.highScore, high)
	}
	return c.NewGame(ctx, c.size)
}

// ApplyMove commits a move. It returns false, leaving everything untouched,
// when the controller is not Ready, dir is invalid, or the move changes
// nothing. On success the controller enters StateAnimating until Settle.
func (c *Controller) ApplyMove(dir board.Direction) bool {
	if c.state != StateReady || !dir.Valid() {
		return false
	}

	res := board.Move(c.board, dir)
	if !res.Moved {
		return false
	}

	c.history.Push(c.board, c.score)
	c.board = res.Board
	c.score += res.ScoreDelta
	c.moves++
	c.highScore = max(c.highScore, c.score)
	c.frame = Frame{Direction: dir, Merged: res.Merged, Moves: res.Moves}

	if !c.won && board.HighestTile(c.board) >= board.WinTile {
		c.won = true
		c.logger.Debug("reached target tile", "score", c.score)
		c.sink.Send(WinEvent{Score: c.score, HighestTile: board.HighestTile(c.board)})
	}

	c.state = StateAnimating
	return true
}

// Settle completes the turn started by ApplyMove: it spawns a tile and moves
// to StateOver if no legal move remains, StateReady otherwise. The returned
// error only reports a persistence failure; local state is already updated.
func (c *Controller) Settle(ctx context.Context) error {
	if c.state != StateAnimating {
		return nil
	}

	sp, placed := board.Spawn(c.board, c.rng, c.fourProb)
	if placed {
		c.frame.Spawned = append(c.frame.Spawned, sp)
	}

	if !placed || board.Assess(c.board).Terminal() {
		c.state = StateOver
		c.over = true
		result := c.result()
		c.logger.Debug("game over", "score", result.Score, "result", result.Result, "moves", result.Moves)
		c.sink.Send(GameOverEvent{Result: result})
		return c.finalize(ctx, result)
	}

	c.state = StateReady
	return nil
}

// Turn applies a move and settles it immediately. It reports whether the
// move was accepted.
func (c *Controller) Turn(ctx context.Context, dir board.Direction) (bool, error) {
	if !c.ApplyMove(dir) {
		return false, nil
	}
	return true, c.Settle(ctx)
}

// Undo restores the previous board and score. Only allowed when Ready.
// The win flag and high score are kept.
func (c *Controller) Undo() bool {
	if c.state != StateReady {
		return false
	}
	cp, ok := c.history.Pop()
	if !ok {
		return false
	}
	c.board = cp.Board
	c.score = cp.Score
	c.over = false
	c.frame = Frame{}
	return true
}

// NewGame abandons the current game and starts a fresh one of the given
// size (0 keeps the current size). A won game that is still in progress is
// recorded as a win first; an error from that save is returned after the
// new game has started.
func (c *Controller) NewGame(ctx context.Context, size int) error {
	if c.state == StateAnimating {
		return ErrAnimating
	}
	if size == 0 {
		size = c.size
	}
	b, err := board.New(size)
	if err != nil {
		return fmt.Errorf("session: new game: %w", err)
	}

	var saveErr error
	if c.won && !c.finalized {
		saveErr = c.finalize(ctx, c.result())
	}

	c.size = size
	c.board = b
	c.score = 0
	c.moves = 0
	c.won = false
	c.over = false
	c.finalized = false
	c.history.Clear()
	c.startedAt = c.now()
	c.frame = Frame{}
	if c.opening != nil && len(c.opening) == size {
		c.board = c.opening
	} else {
		for range 2 {
			if sp, ok := board.Spawn(c.board, c.rng, c.fourProb); ok {
				c.frame.Spawned = append(c.frame.Spawned, sp)
			}
		}
	}
	c.opening = nil
	c.state = StateReady

	c.stats.GamesPlayed++
	c.sink.Send(StatsEvent{Stats: c.stats.Clone()})
	c.logger.Debug("new game", "size", size)

	return saveErr
}

// Abandon ends the current game without starting another, settling a
// pending move first. A won game that has not reached game over is
// recorded as a win, the same as NewGame does. Calling it again is a no-op.
func (c *Controller) Abandon(ctx context.Context) error {
	if c.state == StateAnimating {
		if err := c.Settle(ctx); err != nil {
			return err
		}
	}
	if c.won && !c.finalized {
		return c.finalize(ctx, c.result())
	}
	return nil
}

// Save writes the high score through the persistence port.
func (c *Controller) Save(ctx context.Context) error {
	if err := c.store.SaveHighScore(ctx, c.highScore); err != nil {
		c.logger.Warn("could not save high score", "err", err)
		return fmt.Errorf("session: save high score: %w", err)
	}
	return nil
}

func (c *Controller) result() GameResult {
	now := c.now()
	r := GameResult{
		Score:             c.score,
		HighestTile:       board.HighestTile(c.board),
		Moves:             c.moves,
		Result:            ResultLoss,
		Won:               c.won,
		TimePlayedSeconds: int(now.Sub(c.startedAt) / time.Second),
		Timestamp:         now,
	}
	if c.won {
		r.Result = ResultWin
	}
	return r
}

// finalize records result once per game. If persistence fails the result
// is folded into the cached stats instead.
func (c *Controller) finalize(ctx context.Context, result GameResult) error {
	c.finalized = true

	stats, err := c.store.SaveResult(ctx, result)
	if err != nil {
		c.logger.Warn("could not save game result", "err", err)
		c.stats.Record(result)
		err = fmt.Errorf("session: save result: %w", err)
	} else {
		// Persistence counts finished games only; the cache also counts
		// abandoned ones from NewGame.
		stats.GamesPlayed = max(stats.GamesPlayed, c.stats.GamesPlayed)
		c.stats = stats
	}

	c.sink.Send(StatsEvent{Stats: c.stats.Clone()})
	return err
}

// Board returns a copy of the current board.
func (c *Controller) Board() board.Board { return c.board.Clone() }

// Score returns the current game's score.
func (c *Controller) Score() int { return c.score }

// HighScore returns the best score seen by this controller or loaded at Start.
func (c *Controller) HighScore() int { return c.highScore }

// HistoryLen returns the number of undo steps available.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// State returns the turn-cycle state.
func (c *Controller) State() State { return c.state }

// Animating reports whether a committed move is waiting for Settle.
func (c *Controller) Animating() bool { return c.state == StateAnimating }

// Over reports whether the current game has ended.
func (c *Controller) Over() bool { return c.over }

// Won reports whether WinTile has been reached this game.
func (c *Controller) Won() bool { return c.won }

// Moves returns the number of committed moves this game. Undo does not
// decrement it.
func (c *Controller) Moves() int { return c.moves }

// Size returns the board dimension.
func (c *Controller) Size() int { return c.size }

// Stats returns a copy of the cached player statistics.
func (c *Controller) Stats() PlayerStats { return c.stats.Clone() }

// Frame returns the metadata of the last transition.
func (c *Controller) Frame() Frame { return c.frame }

// Elapsed returns time spent on the current game.
func (c *Controller) Elapsed() time.Duration { return c.now().Sub(c.startedAt) }

// Snapshot returns a JSON-friendly view of the controller.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Board:      c.board.Clone(),
		Size:       c.size,
		Score:      c.score,
		HighScore:  c.highScore,
		State:      c.state,
		Won:        c.won,
		Over:       c.over,
		Moves:      c.moves,
		HistoryLen: c.history.Len(),
	}
}
