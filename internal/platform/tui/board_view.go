package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/beyond2048/internal/board"
	"github.com/vovakirdan/beyond2048/internal/core"
	"github.com/vovakirdan/beyond2048/internal/session"
)

const (
	hudHeight   = 3 // title, score line, status line
	minCellW    = 7 // six digits plus the grid line
	markerMerge = '*'
	markerNew   = '+'
)

// cellLayouts are tried largest first; widths and heights include the grid
// line to the left of and above each cell.
var cellLayouts = [][2]int{{9, 4}, {7, 3}, {minCellW, 2}}

// BoardView is everything needed to draw one frame of the board.
type BoardView struct {
	Snapshot session.Snapshot
	Frame    session.Frame
	Progress float64 // slide progress while animating, 0..1
	Message  string  // one-line status shown under the score
}

// boardLayout is the on-screen geometry of the grid.
type boardLayout struct {
	x, y         int
	cellW, cellH int
	size         int
}

func (l boardLayout) width() int  { return l.size*l.cellW + 1 }
func (l boardLayout) height() int { return l.size*l.cellH + 1 }

// layoutFor picks the largest cell geometry that fits the screen. It reports
// false when even the smallest does not.
func layoutFor(size int, screen core.Rect) (boardLayout, bool) {
	for _, cl := range cellLayouts {
		l := boardLayout{cellW: cl[0], cellH: cl[1], size: size}
		if l.width() <= screen.W && l.height()+hudHeight <= screen.H {
			l.x = screen.X + (screen.W-l.width())/2
			l.y = screen.Y + hudHeight
			return l, true
		}
	}
	return boardLayout{}, false
}

// DrawBoard renders v onto dst.
func DrawBoard(dst *core.Screen, v BoardView) {
	dst.Clear()

	size := v.Snapshot.Size
	l, ok := layoutFor(size, dst.Bounds())
	if !ok || len(v.Snapshot.Board) != size {
		drawTooSmall(dst)
		return
	}

	drawHUD(dst, l, v)
	drawGrid(dst, l)

	if v.Snapshot.State == session.StateAnimating {
		drawSliding(dst, l, v.Frame, v.Progress)
	} else {
		drawTiles(dst, l, v.Snapshot.Board, v.Frame)
	}

	if v.Snapshot.Over {
		title := "GAME OVER"
		if v.Snapshot.Won {
			title = "YOU WON!"
		}
		drawOverlay(dst, l, title,
			fmt.Sprintf("Score: %d", v.Snapshot.Score),
			"n: new game  b: menu")
	}
}

func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorWarning)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorMuted)
}

func drawHUD(dst *core.Screen, l boardLayout, v BoardView) {
	s := v.Snapshot
	title := fmt.Sprintf("2048  %dx%d", s.Size, s.Size)
	dst.DrawTextCentered(0, title, core.ColorTitle)

	score := fmt.Sprintf("Score: %d", s.Score)
	dst.DrawTextColored(l.x, 1, score, core.ColorDefault)
	best := fmt.Sprintf("Best: %d", s.HighScore)
	dst.DrawTextColored(l.x+l.width()-len(best), 1, best, core.ColorDefault)

	status := v.Message
	color := core.ColorMuted
	switch {
	case status != "":
		color = core.ColorWarning
	case s.Won && !s.Over:
		status = "2048 reached! Keep going"
		color = core.ColorAccent
	default:
		status = fmt.Sprintf("Moves: %d  Undo: %d", s.Moves, s.HistoryLen)
	}
	dst.DrawTextCentered(2, status, color)
}

// drawGrid draws the cell borders and empty cell dots.
func drawGrid(dst *core.Screen, l boardLayout) {
	for row := range l.size + 1 {
		for col := range l.size + 1 {
			px := l.x + col*l.cellW
			py := l.y + row*l.cellH
			dst.SetColored(px, py, gridCorner(row, col, l.size), core.ColorBorder)

			if col < l.size {
				dst.DrawHLine(px+1, py, l.cellW-1, '─', core.ColorBorder)
			}
			if row < l.size {
				dst.DrawVLine(px, py+1, l.cellH-1, '│', core.ColorBorder)
			}
			if row < l.size && col < l.size {
				cx, cy := cellCenter(l, float64(row), float64(col))
				dst.SetColored(cx, cy, '·', core.ColorEmpty)
			}
		}
	}
}

func gridCorner(row, col, size int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == size:
		return '┐'
	case row == size && col == 0:
		return '└'
	case row == size && col == size:
		return '┘'
	case row == 0:
		return '┬'
	case row == size:
		return '┴'
	case col == 0:
		return '├'
	case col == size:
		return '┤'
	default:
		return '┼'
	}
}

// cellCenter returns the screen position of the middle of a (possibly
// fractional) cell.
func cellCenter(l boardLayout, row, col float64) (int, int) {
	x := l.x + int(math.Round(col*float64(l.cellW))) + l.cellW/2
	y := l.y + int(math.Round(row*float64(l.cellH))) + l.cellH/2
	return x, y
}

func drawTiles(dst *core.Screen, l boardLayout, b board.Board, f session.Frame) {
	for row := range l.size {
		for col := range l.size {
			val := b[row][col]
			if val == 0 {
				continue
			}
			c := board.Coord{Row: row, Col: col}
			var marker rune
			switch {
			case f.IsNew(c):
				marker = markerNew
			case f.IsMerged(c):
				marker = markerMerge
			}
			drawTile(dst, l, float64(row), float64(col), val, marker)
		}
	}
}

// drawSliding draws every surviving tile part way along its path.
func drawSliding(dst *core.Screen, l boardLayout, f session.Frame, progress float64) {
	t := core.EaseOutQuad(progress)
	for _, m := range f.Moves {
		if m.Value == 0 {
			continue
		}
		row := core.Lerp(float64(m.From.Row), float64(m.To.Row), t)
		col := core.Lerp(float64(m.From.Col), float64(m.To.Col), t)
		drawTile(dst, l, row, col, m.Value, 0)
	}
}

// drawTile fills the interior of a cell with the tile color and centers
// the value in it.
func drawTile(dst *core.Screen, l boardLayout, row, col float64, value int, marker rune) {
	color := core.TileColor(value)
	x := l.x + int(math.Round(col*float64(l.cellW))) + 1
	y := l.y + int(math.Round(row*float64(l.cellH))) + 1
	dst.DrawRect(core.NewRect(x, y, l.cellW-1, l.cellH-1), ' ', color)

	text := strconv.Itoa(value)
	tx := x + max((l.cellW-1-len(text))/2, 0)
	ty := y + (l.cellH-2)/2
	dst.DrawTextColored(tx, ty, text, color)
	if marker != 0 {
		dst.SetColored(x, y, marker, color)
	}
}

// drawOverlay draws a centered box over the board.
func drawOverlay(dst *core.Screen, l boardLayout, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	area := core.NewRect(l.x, l.y, l.width(), l.height())
	box := area.CenterIn(width+4, len(lines)+2)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorAccent)
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorTitle
		}
		dst.DrawTextColored(box.X+(box.W-len(line))/2, box.Y+1+i, line, color)
	}
}
