package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // top-left corner
		{14, 14, true},  // bottom-right (inside)
		{15, 15, false}, // just outside
		{12, 12, true},  // center
		{9, 10, false},  // left of rect
		{10, 9, false},  // above rect
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	got := NewRect(0, 0, 10, 6).Inset(1)
	if got != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", got)
	}
	if got := NewRect(0, 0, 2, 2).Inset(3); got.W != 0 || got.H != 0 {
		t.Errorf("Inset past zero = %+v", got)
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name  string
		outer Rect
		w, h  int
		want  Rect
	}{
		{"fits", NewRect(0, 0, 80, 24), 42, 22, NewRect(19, 1, 42, 22)},
		{"offset outer", NewRect(10, 5, 20, 10), 10, 4, NewRect(15, 8, 10, 4)},
		{"too small", NewRect(0, 0, 10, 10), 42, 22, NewRect(0, 0, 42, 22)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Centered(tc.w, tc.h); got != tc.want {
				t.Errorf("Centered() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, expected int
	}{
		{0, 5, 0},
		{5, 5, 0},
		{-1, 5, 4},
		{7, 5, 2},
		{3, 0, 0},
	}
	for _, tc := range tests {
		if got := Wrap(tc.i, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.i, tc.n, got, tc.expected)
		}
	}
}

func TestActionDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		d, ok := a.Direction()
		if !ok {
			t.Errorf("%v should map to a direction", a)
			continue
		}
		if d.String() != map[Action]string{
			ActionUp: "up", ActionDown: "down", ActionLeft: "left", ActionRight: "right",
		}[a] {
			t.Errorf("%v mapped to %v", a, d)
		}
	}
	if _, ok := ActionPause.Direction(); ok {
		t.Error("Pause should not map to a direction")
	}
}
