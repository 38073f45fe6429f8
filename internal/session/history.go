package session

import "github.com/vovakirdan/beyond2048/internal/board"

// DefaultHistoryLimit is the undo depth used when Options leaves it unset.
const DefaultHistoryLimit = 100

// Checkpoint is a restorable (board, score) pair.
type Checkpoint struct {
	Board board.Board
	Score int
}

// History is a bounded LIFO of checkpoints. A limit of zero or less keeps
// every entry; otherwise the oldest entry is dropped once the limit is hit.
type History struct {
	limit   int
	entries []Checkpoint
}

// NewHistory creates an empty history with the given limit.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push stores a copy of the board with its score.
func (h *History) Push(b board.Board, score int) {
	h.entries = append(h.entries, Checkpoint{Board: b.Clone(), Score: score})
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0], h.entries[drop:]...)
	}
}

// Pop removes and returns the most recent checkpoint.
func (h *History) Pop() (Checkpoint, bool) {
	if len(h.entries) == 0 {
		return Checkpoint{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = Checkpoint{}
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of stored checkpoints.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the configured bound.
func (h *History) Limit() int {
	return h.limit
}

// Clear drops every checkpoint.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
