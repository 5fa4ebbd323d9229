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

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != '●' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red ●", cell)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		cell := s.GetCell(2+i, 1)
		if cell.Rune != ch || cell.Color != ColorYellow {
			t.Errorf("DrawTextColored: expected yellow %q at (%d, 1), got %+v", ch, 2+i, cell)
		}
	}

	// Multi-byte runes advance one cell each
	s.DrawText(0, 2, "♥♥x")
	if s.Get(2, 2) != 'x' {
		t.Errorf("DrawText should advance one cell per rune, got %q at (2, 2)", s.Get(2, 2))
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorCyan)

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' || s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Error("DrawBox corners are wrong")
	}
	if s.GetCell(3, 1).Color != ColorCyan {
		t.Error("DrawBox should color its edges")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should not fill the interior")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row := s.Row(0); row != strings.Repeat(" ", 8) {
		t.Errorf("Resize should clear content, row 0 = %q", row)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if outOfBounds := s.Row(-1); outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}

func TestScreenFillRectClips(t *testing.T) {
	s := NewScreen(4, 3)
	s.FillRect(NewRect(2, 1, 5, 5), '#', ColorRed)

	if got := s.String(); got != "    \n  ##\n  ##" {
		t.Errorf("String() = %q after FillRect", got)
	}
	if c := s.GetCell(3, 2); c.Color != ColorRed {
		t.Errorf("GetCell(3, 2).Color = %v, expected red", c.Color)
	}
}

func TestScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("NewScreen(-3, 2) = %dx%d %q", s.Width(), s.Height(), s.String())
	}
}
