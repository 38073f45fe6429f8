package board

import "strings"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "left" or "UP" into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// cell maps position k of line i (k=0 at the edge tiles move toward) to a
// board coordinate. Rows are the lines for Left/Right, columns for Up/Down.
func (d Direction) cell(size, line, k int) Coord {
	switch d {
	case DirLeft:
		return Coord{Row: line, Col: k}
	case DirRight:
		return Coord{Row: line, Col: size - 1 - k}
	case DirUp:
		return Coord{Row: k, Col: line}
	default:
		return Coord{Row: size - 1 - k, Col: line}
	}
}

// TileMove records where a pre-move tile ended up.
// A tile swallowed by its merge partner has Consumed set and Value 0.
type TileMove struct {
	From     Coord `json:"from"`
	To       Coord `json:"to"`
	Value    int   `json:"value"`
	Consumed bool  `json:"merged,omitempty"`
}

// MoveResult is produced by Move.
type MoveResult struct {
	Board      Board
	Moved      bool
	ScoreDelta int
	Merged     []Coord    // cells holding a freshly merged tile
	Moves      []TileMove // one entry per tile present before the move
}

// Positions returns the tile moves keyed by origin "row-col".
func (r MoveResult) Positions() map[string]TileMove {
	out := make(map[string]TileMove, len(r.Moves))
	for _, m := range r.Moves {
		out[m.From.Key()] = m
	}
	return out
}

// MergeCount returns how many merges happened in the move.
func (r MoveResult) MergeCount() int {
	return len(r.Merged)
}

// lineResult is the outcome of sliding one line toward index 0.
type lineResult struct {
	values []int
	score  int
	dest   []int  // per input index: output index, -1 for empty input cells
	eaten  []bool // per input index: consumed by a merge
	merged []bool // per output index: holds a merge product
}

// slideLine compresses a line toward index 0 and merges equal neighbours in
// a single sweep. A merge product never merges again in the same sweep, so
// [2 2 2 2] becomes [4 4 0 0] and [2 2 4 0] becomes [4 4 0 0].
func slideLine(line []int) lineResult {
	n := len(line)
	res := lineResult{
		values: make([]int, n),
		dest:   make([]int, n),
		eaten:  make([]bool, n),
		merged: make([]bool, n),
	}

	w := 0
	open := false // values[w-1] may still absorb an equal tile
	for i, v := range line {
		res.dest[i] = -1
		if v == 0 {
			continue
		}

		if open && res.values[w-1] == v {
			res.values[w-1] *= 2
			res.score += res.values[w-1]
			res.merged[w-1] = true
			res.dest[i] = w - 1
			res.eaten[i] = true
			open = false
			continue
		}

		res.values[w] = v
		res.dest[i] = w
		w++
		open = true
	}

	return res
}

// Move slides every tile toward the edge named by dir, merging equal
// neighbours once per move. The input board is never modified. An invalid
// direction yields Moved=false and an unchanged copy of the board.
func Move(b Board, dir Direction) MoveResult {
	size := len(b)
	res := MoveResult{Board: alloc(size)}

	if !dir.Valid() {
		for r := range b {
			copy(res.Board[r], b[r])
		}
		return res
	}

	line := make([]int, size)
	for i := range size {
		for k := range size {
			line[k] = b.At(dir.cell(size, i, k))
		}

		lr := slideLine(line)
		res.ScoreDelta += lr.score

		for k := range size {
			at := dir.cell(size, i, k)
			res.Board[at.Row][at.Col] = lr.values[k]
			if lr.values[k] != line[k] {
				res.Moved = true
			}
			if lr.merged[k] {
				res.Merged = append(res.Merged, at)
			}
		}

		for k, d := range lr.dest {
			if d < 0 {
				continue
			}
			tm := TileMove{
				From: dir.cell(size, i, k),
				To:   dir.cell(size, i, d),
			}
			if lr.eaten[k] {
				tm.Consumed = true
			} else {
				tm.Value = lr.values[d]
			}
			res.Moves = append(res.Moves, tm)
		}
	}

	return res
}

// CanMove reports whether moving in dir would change the board.
func CanMove(b Board, dir Direction) bool {
	return Move(b, dir).Moved
}
