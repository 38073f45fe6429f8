package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)

	if r.Right() != 12 || r.Bottom() != 7 {
		t.Errorf("Right, Bottom = %d, %d, want 12, 7", r.Right(), r.Bottom())
	}
	if x, y := r.Center(); x != 7 || y != 5 {
		t.Errorf("Center() = (%d, %d), want (7, 5)", x, y)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 4, 4)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 3, true},
		{4, 0, false},
		{0, 4, false},
		{-1, 2, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectCenterIn(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	got := outer.CenterIn(30, 10)
	want := NewRect(25, 7, 30, 10)
	if got != want {
		t.Errorf("CenterIn() = %+v, want %+v", got, want)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 0.5, 5},
		{0, 10, 1, 10},
		{4, 2, 0.5, 3},
		{0, 10, 2, 10},
		{0, 10, -1, 0},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestEaseOutQuad(t *testing.T) {
	if EaseOutQuad(0) != 0 || EaseOutQuad(1) != 1 {
		t.Error("EaseOutQuad should map 0 to 0 and 1 to 1")
	}
	if got := EaseOutQuad(0.5); got != 0.75 {
		t.Errorf("EaseOutQuad(0.5) = %v, want 0.75", got)
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := EaseOutQuad(float64(i) / 10)
		if v < prev {
			t.Fatalf("EaseOutQuad not monotonic at %d", i)
		}
		prev = v
	}
}
