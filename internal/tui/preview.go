package tui

import (
	"strconv"
	"strings"

	"github.com/1broseidon/floatpane/internal/monitor"
	"github.com/1broseidon/floatpane/internal/placement"
)

// renderPreview draws the panel at every grid slot on mon, scaled onto a
// width x height character canvas. The selected slot is drawn with a heavy
// border. With random set, only the area random placement can reach is
// drawn.
func renderPreview(mon monitor.Info, g placement.Grid, window placement.Size, selected int, random bool, width, height int) []string {
	if width < 5 || height < 3 || mon.Width <= 0 || mon.Height <= 0 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	toCanvas := func(r placement.Rect) cell {
		return cell{
			x1: int((r.X - mon.X) * float64(width) / mon.Width),
			y1: int((r.Y - mon.Y) * float64(height) / mon.Height),
			x2: int((r.X - mon.X + r.Width) * float64(width) / mon.Width),
			y2: int((r.Y - mon.Y + r.Height) * float64(height) / mon.Height),
		}
	}

	if random {
		// Random origins start 100px in; the panel can reach the far edges.
		reach := placement.Rect{X: mon.X + 100, Y: mon.Y + 100, Width: mon.Width - 100, Height: mon.Height - 100}
		drawTile(canvas, toCanvas(reach), "?", lightBox)
	} else if slots, err := placement.Slots(g, mon, window); err == nil {
		for _, s := range slots {
			if s.Index == selected {
				continue
			}
			drawTile(canvas, toCanvas(slotRect(s, window)), strconv.Itoa(s.Index), lightBox)
		}
		// Drawn last so it stays on top of overlapping neighbours.
		for _, s := range slots {
			if s.Index == selected {
				drawTile(canvas, toCanvas(slotRect(s, window)), strconv.Itoa(s.Index), heavyBox)
			}
		}
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func slotRect(s placement.Slot, window placement.Size) placement.Rect {
	return placement.Rect{X: s.Point.X, Y: s.Point.Y, Width: window.Width, Height: window.Height}
}

type cell struct {
	x1, y1, x2, y2 int
}

// box holds horizontal, vertical and the four corners, clockwise from
// top-left.
type box [6]rune

var (
	lightBox = box{'─', '│', '┌', '┐', '┘', '└'}
	heavyBox = box{'━', '┃', '┏', '┓', '┛', '┗'}
)

func drawTile(canvas [][]rune, c cell, label string, b box) {
	canvasH := len(canvas)
	if canvasH == 0 {
		return
	}
	canvasW := len(canvas[0])

	// Keep clear of the outer border.
	c.x1 = max(c.x1, 1)
	c.y1 = max(c.y1, 1)
	c.x2 = min(c.x2, canvasW-2)
	c.y2 = min(c.y2, canvasH-2)
	if c.x2 <= c.x1 || c.y2 <= c.y1 {
		return
	}

	for x := c.x1; x <= c.x2; x++ {
		canvas[c.y1][x] = b[0]
		canvas[c.y2][x] = b[0]
	}
	for y := c.y1; y <= c.y2; y++ {
		canvas[y][c.x1] = b[1]
		canvas[y][c.x2] = b[1]
	}
	canvas[c.y1][c.x1] = b[2]
	canvas[c.y1][c.x2] = b[3]
	canvas[c.y2][c.x2] = b[4]
	canvas[c.y2][c.x1] = b[5]

	centerY := (c.y1 + c.y2) / 2
	centerX := (c.x1 + c.x2) / 2
	if centerY > c.y1 && centerY < c.y2 {
		startX := centerX - len(label)/2
		for i, r := range label {
			if x := startX + i; x > c.x1 && x < c.x2 {
				canvas[centerY][x] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
