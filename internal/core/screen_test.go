package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X', Color: ColorRug})
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRug {
		t.Errorf("GetCell(5, 5) = %+v, expected X in ColorRug", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(7, 1, "HELLO", ColorHUD)

	if got := s.Row(1); got != "       HEL" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
	if s.GetCell(8, 1).Color != ColorHUD {
		t.Error("DrawText should color the cells")
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(10, 3)
	clip := NewRect(2, 0, 4, 3)
	s.DrawTextClipped(0, 0, "ABCDEFGH", ColorCoin, clip)

	if got := s.Row(0); got != "  CDEF    " {
		t.Errorf("Row(0) = %q, expected only clip cells drawn", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(s.Bounds(), ColorFrame)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X')
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Resize: got %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if strings.Contains(s.String(), "X") {
		t.Error("Resize should leave a blank screen")
	}

	s.DrawText(0, 0, "abc", ColorDefault)
	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Clear should blank every cell")
	}
}
