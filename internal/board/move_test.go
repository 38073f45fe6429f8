package board

import (
	"math/rand"
	"slices"
	"sort"
	"testing"
)

func TestSlideLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "merge product does not cascade",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "merge product does not cascade behind gap",
			input:    []int{4, 0, 4, 8},
			expected: []int{8, 8, 0, 0},
			score:    8,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    0,
		},
		{
			name:     "three wide",
			input:    []int{8, 8, 8},
			expected: []int{16, 8, 0},
			score:    16,
		},
		{
			name:     "six wide",
			input:    []int{2, 2, 4, 4, 8, 8},
			expected: []int{4, 8, 16, 0, 0, 0},
			score:    28,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := slideLine(tt.input)
			if !slices.Equal(res.values, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, res.values, tt.expected)
			}
			if res.score != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, res.score, tt.score)
			}
		})
	}
}

func TestMoveLeftScenario(t *testing.T) {
	b := Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	want := Board{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Move(b, DirLeft)
	if !res.Board.Equal(want) {
		t.Errorf("Move left: got\n%v\nwant\n%v", res.Board, want)
	}
	if !res.Moved {
		t.Error("Move left should report moved")
	}
	if res.ScoreDelta != 4 {
		t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
	}
	if len(res.Merged) != 1 || res.Merged[0] != (Coord{0, 0}) {
		t.Errorf("Merged = %v, want [{0 0}]", res.Merged)
	}
}

func TestMoveRightScenario(t *testing.T) {
	b := Board{
		{2, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Move(b, DirRight)
	if !slices.Equal(res.Board[0], []int{0, 0, 0, 4}) {
		t.Errorf("row 0 = %v, want [0 0 0 4]", res.Board[0])
	}
	if res.ScoreDelta != 4 {
		t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
	}
}

func TestMoveAllDirections(t *testing.T) {
	start := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir   Direction
		want  Board
		score int
	}{
		{
			dir: DirLeft,
			want: Board{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			dir: DirRight,
			want: Board{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			dir: DirUp,
			want: Board{
				{2, 4, 4, 4},
				{4, 0, 2, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4 + 4,
		},
		{
			dir: DirDown,
			want: Board{
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 4, 0},
				{2, 4, 2, 4},
			},
			score: 4 + 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			res := Move(start, tt.dir)
			if !res.Board.Equal(tt.want) {
				t.Errorf("Move %s: got\n%v\nwant\n%v", tt.dir, res.Board, tt.want)
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("Move %s score = %d, want %d", tt.dir, res.ScoreDelta, tt.score)
			}
			if !res.Moved {
				t.Errorf("Move %s should report moved", tt.dir)
			}
		})
	}
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	b := Board{
		{2, 2, 0},
		{0, 4, 4},
		{8, 0, 8},
	}
	before := b.Clone()

	for _, dir := range Directions {
		Move(b, dir)
	}

	if !b.Equal(before) {
		t.Errorf("Move mutated its input: got\n%v\nwant\n%v", b, before)
	}
}

func TestMoveNoOp(t *testing.T) {
	b := Board{
		{4, 2, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Move(b, DirLeft)
	if res.Moved {
		t.Error("Move left should not change already left-aligned tiles")
	}
	if !res.Board.Equal(b) {
		t.Errorf("no-op move changed board: got\n%v\nwant\n%v", res.Board, b)
	}
	if res.ScoreDelta != 0 {
		t.Errorf("no-op ScoreDelta = %d, want 0", res.ScoreDelta)
	}
	if len(res.Merged) != 0 {
		t.Errorf("no-op Merged = %v, want none", res.Merged)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	b := Board{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	}

	res := Move(b, Direction(42))
	if res.Moved {
		t.Error("invalid direction should not move")
	}
	if !res.Board.Equal(b) {
		t.Errorf("invalid direction changed board:\n%v", res.Board)
	}
}

func TestMovePositionsCoverEveryTile(t *testing.T) {
	b := Board{
		{2, 2, 2, 2},
		{0, 4, 0, 4},
		{8, 0, 0, 0},
		{2, 4, 8, 16},
	}

	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			res := Move(b, dir)
			pos := res.Positions()

			if len(res.Moves) != TileCount(b) {
				t.Fatalf("len(Moves) = %d, want %d", len(res.Moves), TileCount(b))
			}
			if len(pos) != len(res.Moves) {
				t.Fatalf("Positions has %d entries, want %d (duplicate origins)", len(pos), len(res.Moves))
			}

			consumed := 0
			for _, m := range res.Moves {
				if b.At(m.From) == 0 {
					t.Errorf("move from empty cell %v", m.From)
				}
				if m.Consumed {
					consumed++
					if m.Value != 0 {
						t.Errorf("consumed tile %v has value %d, want 0", m.From, m.Value)
					}
					continue
				}
				if got := res.Board.At(m.To); got != m.Value {
					t.Errorf("tile %v -> %v value %d, board has %d", m.From, m.To, m.Value, got)
				}
			}

			if consumed != len(res.Merged) {
				t.Errorf("consumed tiles = %d, merges = %d", consumed, len(res.Merged))
			}
		})
	}
}

func TestMoveConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for size := MinSize; size <= MaxSize; size++ {
		for range 200 {
			b := randomBoard(rng, size)
			for _, dir := range Directions {
				res := Move(b, dir)

				if !Valid(res.Board) {
					t.Fatalf("Move produced invalid board:\n%v", res.Board)
				}

				if got, want := TileCount(res.Board), TileCount(b)-res.MergeCount(); got != want {
					t.Fatalf("tile count = %d, want %d", got, want)
				}

				want := tiles(b)
				for _, m := range res.Merged {
					v := res.Board.At(m)
					want = removeOne(want, v/2)
					want = removeOne(want, v/2)
					want = append(want, v)
				}
				sort.Ints(want)
				if got := tiles(res.Board); !slices.Equal(got, want) {
					t.Fatalf("Move %s multiset = %v, want %v\nfrom\n%v", dir, got, want, b)
				}

				sum := 0
				for _, m := range res.Merged {
					sum += res.Board.At(m)
				}
				if sum != res.ScoreDelta {
					t.Fatalf("ScoreDelta = %d, sum of merged tiles = %d", res.ScoreDelta, sum)
				}
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		got, ok := ParseDirection(dir.String())
		if !ok || got != dir {
			t.Errorf("ParseDirection(%q) = %v, %v", dir.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
	if got, ok := ParseDirection(" UP "); !ok || got != DirUp {
		t.Errorf("ParseDirection should be case-insensitive, got %v %v", got, ok)
	}
}

func randomBoard(rng *rand.Rand, size int) Board {
	b, _ := New(size)
	for r := range size {
		for c := range size {
			if rng.Intn(3) == 0 {
				continue
			}
			b[r][c] = 1 << (1 + rng.Intn(4))
		}
	}
	return b
}

func tiles(b Board) []int {
	var out []int
	for r := range b {
		for _, v := range b[r] {
			if v != 0 {
				out = append(out, v)
			}
		}
	}
	sort.Ints(out)
	return out
}

func removeOne(s []int, v int) []int {
	i := slices.Index(s, v)
	if i < 0 {
		return s
	}
	return slices.Delete(s, i, i+1)
}
