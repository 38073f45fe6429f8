package board

// Status summarises whether play can continue on a board.
type Status struct {
	HasEmpty      bool
	HasMerge      bool
	ReachedTarget bool
}

// Terminal reports that no legal move remains. Reaching the target tile
// does not make a board terminal.
func (s Status) Terminal() bool {
	return !s.HasEmpty && !s.HasMerge
}

// Assess inspects a board for empty cells, mergeable neighbours in either
// axis, and the presence of WinTile.
func Assess(b Board) Status {
	var s Status
	size := len(b)
	for r := range size {
		for c := range size {
			val := b[r][c]
			switch {
			case val == 0:
				s.HasEmpty = true
			case val == WinTile:
				s.ReachedTarget = true
			}
			if val == 0 {
				continue
			}
			if c < size-1 && b[r][c+1] == val {
				s.HasMerge = true
			}
			if r < size-1 && b[r+1][c] == val {
				s.HasMerge = true
			}
		}
	}
	return s
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(b Board) bool {
	return Assess(b).HasEmpty
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(b Board) bool {
	return Assess(b).Terminal()
}
