// Package placement computes where the floating panels go: slot, random and
// manual placement of the main panel, and collision-free placement of the
// settings panel next to it.
package placement

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned for a grid with fewer than one slot.
var ErrEmptyGrid = errors.New("grid must have at least one slot")

// Size is the fixed footprint of a panel role.
type Size struct {
	Width  float64
	Height float64
}

// Point is an absolute virtual-desktop coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an absolute rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the rectangle's centre point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Mode selects a placement strategy. Exactly one of Grid, Random or Manual.
type Mode interface {
	mode()
	fmt.Stringer
}

// Grid places the panel in one slot of a cols x rows lattice. Position is
// reduced modulo the slot count. When AutoDetect is set Cols and Rows are
// ignored in favour of AutoGrid.
type Grid struct {
	Position   int
	Cols       int
	Rows       int
	AutoDetect bool
}

// Random places the panel at a time-seeded position.
type Random struct{}

// Manual passes an absolute position through unchanged.
type Manual struct {
	X float64
	Y float64
}

func (Grid) mode()   {}
func (Random) mode() {}
func (Manual) mode() {}

func (g Grid) String() string {
	if g.AutoDetect {
		return fmt.Sprintf("grid(position=%d, auto)", g.Position)
	}
	return fmt.Sprintf("grid(position=%d, %dx%d)", g.Position, g.Cols, g.Rows)
}

func (Random) String() string { return "random" }

func (m Manual) String() string {
	return fmt.Sprintf("manual(%g, %g)", m.X, m.Y)
}
