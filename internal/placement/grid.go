package placement

import (
	"fmt"
	"time"

	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/mitchellh/hashstructure/v2"
)

const (
	gridMargin   = 50.0
	randomMargin = 100.0
)

// AutoGrid derives a lattice from a monitor aspect ratio. Thresholds are
// strict: an aspect of exactly 2.0 yields (5, 3).
func AutoGrid(aspect float64) (cols, rows int) {
	switch {
	case aspect > 2.0:
		return 6, 3
	case aspect > 1.8:
		return 5, 3
	case aspect > 1.5:
		return 4, 3
	default:
		return 3, 4
	}
}

// GridDimensions returns the lattice a grid request uses on mon.
func GridDimensions(g Grid, mon monitor.Info) (cols, rows int) {
	if g.AutoDetect {
		return AutoGrid(monitor.AspectRatio(mon))
	}
	return g.Cols, g.Rows
}

// Slot is one grid cell and the panel origin it maps to.
type Slot struct {
	Index int
	Row   int
	Col   int
	Point Point
}

// Placer computes placements. The zero value reads the wall clock.
type Placer struct {
	// Now overrides the clock used to seed random placement.
	Now func() time.Time
}

// Compute is Placer{}.Compute.
func Compute(mode Mode, mon monitor.Info, window Size) (Point, error) {
	return Placer{}.Compute(mode, mon, window)
}

// Compute returns the absolute origin for a panel of size window on mon.
func (p Placer) Compute(mode Mode, mon monitor.Info, window Size) (Point, error) {
	switch m := mode.(type) {
	case Grid:
		cols, rows := GridDimensions(m, mon)
		return gridPoint(m.Position, cols, rows, mon, window)
	case Random:
		return p.random(mon, window)
	case Manual:
		return Point{X: m.X, Y: m.Y}, nil
	case nil:
		return Point{}, fmt.Errorf("no placement mode")
	default:
		return Point{}, fmt.Errorf("unknown placement mode %T", mode)
	}
}

// Slots lists every slot of g on mon in index order.
func Slots(g Grid, mon monitor.Info, window Size) ([]Slot, error) {
	cols, rows := GridDimensions(g, mon)
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, cols, rows)
	}
	slots := make([]Slot, 0, cols*rows)
	for i := 0; i < cols*rows; i++ {
		pt, err := gridPoint(i, cols, rows, mon, window)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{Index: i, Row: i / cols, Col: i % cols, Point: pt})
	}
	return slots, nil
}

func gridPoint(position, cols, rows int, mon monitor.Info, window Size) (Point, error) {
	if cols < 1 || rows < 1 {
		return Point{}, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, cols, rows)
	}
	total := cols * rows
	safe := ((position % total) + total) % total
	row := safe / cols
	col := safe % cols

	availW := mon.Width - window.Width - 2*gridMargin
	availH := mon.Height - window.Height - 2*gridMargin

	return Point{
		X: mon.X + axisOffset(col, cols, availW),
		Y: mon.Y + axisOffset(row, rows, availH),
	}, nil
}

// axisOffset spreads count slots from the margin to margin+available.
func axisOffset(index, count int, available float64) float64 {
	if count == 1 {
		return gridMargin + available/2
	}
	return gridMargin + float64(index)*available/float64(count-1)
}

func (p Placer) random(mon monitor.Info, window Size) (Point, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	h, err := hashstructure.Hash(now().UnixNano(), hashstructure.FormatV2, nil)
	if err != nil {
		return Point{}, fmt.Errorf("hash timestamp: %w", err)
	}

	maxX := modulus(mon.Width - window.Width - randomMargin)
	maxY := modulus(mon.Height - window.Height - randomMargin)

	return Point{
		X: mon.X + randomMargin + float64(h%maxX),
		Y: mon.Y + randomMargin + float64((h>>32)%maxY),
	}, nil
}

// modulus truncates span to an integer modulus of at least 1.
func modulus(span float64) uint64 {
	if span < 1 {
		return 1
	}
	return uint64(span)
}
