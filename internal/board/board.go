// Package board implements the 2048 board engine: tile spawning, the four
// directional move transforms, and terminal-state detection for square
// boards from 3x3 up to 6x6.
//
// Every function here is pure apart from Spawn, which writes the new tile
// into the board it is given. Nothing in this package performs I/O.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	MinSize     = 3
	MaxSize     = 6
	DefaultSize = 4
)

// WinTile is the tile value that marks a game as won, independent of size.
const WinTile = 2048

// ErrInvalidSize is returned when a board dimension is outside [MinSize, MaxSize].
var ErrInvalidSize = errors.New("board: size must be between 3 and 6")

// Board is an N×N grid of tile values. Zero means empty.
type Board [][]int

// Coord addresses a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns the "row-col" form used to key per-cell metadata.
func (c Coord) Key() string {
	return strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
}

// ValidSize reports whether n is a supported board dimension.
func ValidSize(n int) bool {
	return n >= MinSize && n <= MaxSize
}

// New returns an empty board of the given size.
func New(size int) (Board, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	return alloc(size), nil
}

func alloc(size int) Board {
	cells := make([]int, size*size)
	b := make(Board, size)
	for r := range size {
		b[r] = cells[r*size : (r+1)*size : (r+1)*size]
	}
	return b
}

// Size returns the board dimension.
func (b Board) Size() int {
	return len(b)
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	c := alloc(len(b))
	for r := range b {
		copy(c[r], b[r])
	}
	return c
}

// Equal reports whether two boards have the same size and cells.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(other[r]) {
			return false
		}
		for c := range b[r] {
			if b[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// At returns the value at the given coordinate.
func (b Board) At(c Coord) int {
	return b[c.Row][c.Col]
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Coord {
	var cells []Coord
	for r := range b {
		for c := range b[r] {
			if b[r][c] == 0 {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HighestTile returns the maximum tile value, or 0 for an empty board.
func HighestTile(b Board) int {
	maxVal := 0
	for r := range b {
		for _, v := range b[r] {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// TileCount returns the number of occupied cells.
func TileCount(b Board) int {
	n := 0
	for r := range b {
		for _, v := range b[r] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Valid reports whether b is square with a supported size and every
// nonzero cell is a power of two no smaller than 2.
func Valid(b Board) bool {
	if !ValidSize(len(b)) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(b) {
			return false
		}
		for _, v := range b[r] {
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return false
			}
		}
	}
	return true
}

// String renders the board as a right-aligned grid, mostly for test output.
func (b Board) String() string {
	width := len(strconv.Itoa(HighestTile(b)))
	var sb strings.Builder
	for r := range b {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range b[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
