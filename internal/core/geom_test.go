package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 2, 40, 20).Inset(1)
	if r != NewRect(1, 3, 38, 18) {
		t.Errorf("Inset(1) = %+v", r)
	}
	if !NewRect(0, 0, 1, 1).Inset(1).Empty() {
		t.Error("Inset past the size should yield an empty rect")
	}
}

func TestRectProject(t *testing.T) {
	r := NewRect(1, 3, 41, 21)

	tests := []struct {
		name   string
		nx, ny float64
		ex, ey int
	}{
		{"top-left", 0, 0, 1, 3},
		{"bottom-right", 1, 1, 41, 23},
		{"center", 0.5, 0.5, 21, 13},
		{"above the field", 0.5, -0.1, 21, 1},
		{"below the field", 0.5, 1.1, 21, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := r.Project(tc.nx, tc.ny)
			if x != tc.ex || y != tc.ey {
				t.Errorf("Project(%v, %v) = (%d, %d), expected (%d, %d)", tc.nx, tc.ny, x, y, tc.ex, tc.ey)
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
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 || ClampF(0.25, 0, 1) != 0.25 {
		t.Error("ClampF should restrict to [0, 1]")
	}
}
