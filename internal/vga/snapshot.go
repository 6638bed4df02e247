package vga

import "strings"

// Cursor is the position where the next character will be written.
type Cursor struct {
	X int
	Y int
}

// Snapshot is a copy of a surface's cells, taken for presenters.
type Snapshot struct {
	Width  int
	Height int
	Cells  []Cell
	Cursor Cursor
}

// Capture copies every cell of s. The cursor is left at the origin since a
// bare surface has none.
func Capture(s Surface) Snapshot {
	snap := Snapshot{
		Width:  s.Width(),
		Height: s.Height(),
		Cells:  make([]Cell, s.Width()*s.Height()),
	}
	for i := range snap.Cells {
		snap.Cells[i] = UnpackCell(s.Load(i))
	}
	return snap
}

// At returns cell (x, y). It panics outside the grid.
func (s Snapshot) At(x, y int) Cell {
	return s.Cells[y*s.Width+x]
}

// Row returns the character codes of row y as a string.
func (s Snapshot) Row(y int) string {
	b := make([]byte, s.Width)
	for x := 0; x < s.Width; x++ {
		b[x] = s.At(x, y).Char
	}
	return string(b)
}

// Lines returns every row with trailing spaces trimmed.
func (s Snapshot) Lines() []string {
	lines := make([]string, s.Height)
	for y := 0; y < s.Height; y++ {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return lines
}
