package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, 'X')
	if got := s.Get(3, 2); got != 'X' {
		t.Errorf("Get(3,2) = %q, want 'X'", got)
	}

	// Out of bounds writes are ignored, reads return space
	s.Set(-1, 0, 'Y')
	s.Set(10, 0, 'Y')
	s.Set(0, 5, 'Y')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get(-1,0) = %q, want space", got)
	}
	if got := s.Get(10, 0); got != ' ' {
		t.Errorf("Get(10,0) = %q, want space", got)
	}
}

func TestScreenSetCellColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(1, 1, '#', ColorCyan)

	cell := s.GetCell(1, 1)
	if cell.Rune != '#' || cell.Color != ColorCyan {
		t.Errorf("GetCell(1,1) = %+v, want {#, cyan}", cell)
	}

	if cell := s.GetCell(99, 99); cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("out-of-bounds GetCell = %+v, want default space", cell)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(2, 2, 'X', ColorRed)
	s.Clear()

	if cell := s.GetCell(2, 2); cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear, GetCell(2,2) = %+v, want default space", cell)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, 'A')
	s.Set(9, 4, 'B')

	s.Resize(5, 3)
	if got := s.Get(2, 2); got != 'A' {
		t.Errorf("after shrink, Get(2,2) = %q, want 'A'", got)
	}

	s.Resize(12, 6)
	if got := s.Get(2, 2); got != 'A' {
		t.Errorf("after grow, Get(2,2) = %q, want 'A'", got)
	}
	if got := s.Get(11, 5); got != ' ' {
		t.Errorf("new area Get(11,5) = %q, want space", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(1, 1, "hello")

	if row := s.Row(1); row != " hello    " {
		t.Errorf("Row(1) = %q, want %q", row, " hello    ")
	}

	// Clipped text
	s.DrawText(8, 0, "abc")
	if got := s.Get(9, 0); got != 'b' {
		t.Errorf("clipped text Get(9,0) = %q, want 'b'", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	want := "a  \n  b"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if n := strings.Count(s.String(), "\n"); n != 1 {
		t.Errorf("String() newline count = %d, want 1", n)
	}
}
