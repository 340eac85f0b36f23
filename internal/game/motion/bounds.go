package motion

import "fmt"

// Minimum arena size the bounce model stays inside.
const (
	MinCols = 4
	MinRows = 3
)

// Position is a 1-based (column, row) cell, matching terminal cursor addressing.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Bounds is the inclusive rectangle dice move within. It is snapshotted once
// per roll and never changes while dice are moving.
type Bounds struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// NewBounds returns the arena for a cols x rows terminal.
//
// Precondition: cols >= MinCols and rows >= MinRows.
// Postcondition: Left == Top == 1, Right == cols, Bottom == rows.
func NewBounds(cols, rows int) (Bounds, error) {
	if cols < MinCols || rows < MinRows {
		return Bounds{}, fmt.Errorf("arena %dx%d is smaller than %dx%d", cols, rows, MinCols, MinRows)
	}
	return Bounds{Left: 1, Top: 1, Right: cols, Bottom: rows}, nil
}

// Width is the number of columns.
func (b Bounds) Width() int { return b.Right - b.Left + 1 }

// Height is the number of rows.
func (b Bounds) Height() int { return b.Bottom - b.Top + 1 }

// Centre returns the middle cell using integer division, like the terminal's.
func (b Bounds) Centre() Position {
	return Position{Col: b.Width() / 2, Row: b.Height() / 2}
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Position) bool {
	return p.Col >= b.Left && p.Col <= b.Right && p.Row >= b.Top && p.Row <= b.Bottom
}

// Clamp pulls p inside b. The renderer uses it when a terminal shrank after
// the roll's bounds were taken.
func (b Bounds) Clamp(p Position) Position {
	return Position{Col: clamp(p.Col, b.Left, b.Right), Row: clamp(p.Row, b.Top, b.Bottom)}
}

// rightWall is the column a die collides with. Two-character faces stop one
// column short so they never spill past the last column.
func (b Bounds) rightWall(twoDigit bool) int {
	if twoDigit {
		return b.Right - 1
	}
	return b.Right
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
