// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"
	"sync"

	"github.com/1broseidon/floatpane/internal/platform"
)

// Call is one recorded backend write.
type Call struct {
	Op     string
	Window platform.WindowID
	Value  any
}

// Backend is a fake window system. Windows are registered by title; every
// write is recorded and applied to the in-memory state.
type Backend struct {
	mu sync.Mutex

	DisplayList []platform.Display
	DisplayErr  error
	Active      int
	nextID      platform.WindowID
	titles      map[string]platform.WindowID
	rects       map[platform.WindowID]platform.Rect
	visible     map[platform.WindowID]bool
	passthrough map[platform.WindowID]bool
	levels      map[platform.WindowID]platform.Level
	behaviors   map[platform.WindowID]platform.CollectionBehavior
	calls       []Call
}

var _ platform.Backend = (*Backend)(nil)

// New creates a fake with the given displays.
func New(displays ...platform.Display) *Backend {
	return &Backend{
		DisplayList: displays,
		nextID:      1,
		titles:      make(map[string]platform.WindowID),
		rects:       make(map[platform.WindowID]platform.Rect),
		visible:     make(map[platform.WindowID]bool),
		passthrough: make(map[platform.WindowID]bool),
		levels:      make(map[platform.WindowID]platform.Level),
		behaviors:   make(map[platform.WindowID]platform.CollectionBehavior),
	}
}

// Display is a shorthand constructor.
func Display(id, x, y, w, h int) platform.Display {
	return platform.Display{
		ID:     id,
		Name:   fmt.Sprintf("OUT-%d", id),
		Bounds: platform.Rect{X: x, Y: y, Width: w, Height: h},
	}
}

// AddWindow registers a window and returns its id.
func (b *Backend) AddWindow(title string, rect platform.Rect) platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.titles[title] = id
	b.rects[id] = rect
	return id
}

// Calls returns a copy of the recorded writes.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Ops returns just the op names of recorded writes.
func (b *Backend) Ops() []string {
	calls := b.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets recorded writes.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// Rect returns the stored rectangle for a window.
func (b *Backend) Rect(id platform.WindowID) platform.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rects[id]
}

// Passthrough reports the stored input passthrough flag.
func (b *Backend) Passthrough(id platform.WindowID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.passthrough[id]
}

// Level returns the stored level.
func (b *Backend) Level(id platform.WindowID) platform.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[id]
}

// Behavior returns the stored collection behavior.
func (b *Backend) Behavior(id platform.WindowID) platform.CollectionBehavior {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.behaviors[id]
}

// Visible reports whether the window is shown.
func (b *Backend) Visible(id platform.WindowID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible[id]
}

func (b *Backend) record(op string, id platform.WindowID, v any) {
	b.calls = append(b.calls, Call{Op: op, Window: id, Value: v})
}

func (b *Backend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DisplayErr != nil {
		return nil, b.DisplayErr
	}
	out := make([]platform.Display, len(b.DisplayList))
	copy(out, b.DisplayList)
	return out, nil
}

func (b *Backend) ActiveDisplay() (platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Active < 0 || b.Active >= len(b.DisplayList) {
		return platform.Display{}, fmt.Errorf("no active display")
	}
	return b.DisplayList[b.Active], nil
}

func (b *Backend) DisplayForWindow(id platform.WindowID) (platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.rects[id]
	if !ok {
		return platform.Display{}, platform.ErrWindowNotFound
	}
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	for _, d := range b.DisplayList {
		if cx >= d.Bounds.X && cx < d.Bounds.X+d.Bounds.Width && cy >= d.Bounds.Y && cy < d.Bounds.Y+d.Bounds.Height {
			return d, nil
		}
	}
	return platform.Display{}, fmt.Errorf("window %d is not on any display", id)
}

func (b *Backend) FindWindow(title string) (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.titles[title]
	if !ok {
		return 0, fmt.Errorf("%w: %q", platform.ErrWindowNotFound, title)
	}
	return id, nil
}

func (b *Backend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.rects[id]
	if !ok {
		return platform.Rect{}, platform.ErrWindowNotFound
	}
	return r, nil
}

func (b *Backend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rects[id] = bounds
	b.record("move-resize", id, bounds)
	return nil
}

func (b *Backend) Move(id platform.WindowID, x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.rects[id]
	r.X, r.Y = x, y
	b.rects[id] = r
	b.record("move", id, [2]int{x, y})
	return nil
}

func (b *Backend) SetInputPassthrough(id platform.WindowID, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.passthrough[id] = on
	b.record("passthrough", id, on)
	return nil
}

func (b *Backend) SetMovableByBackground(id platform.WindowID, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("movable", id, on)
	return nil
}

func (b *Backend) SetAcceptsMouseMoved(id platform.WindowID, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("mouse-moved", id, on)
	return nil
}

func (b *Backend) SetLevel(id platform.WindowID, level platform.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[id] = level
	b.record("level", id, level)
	return nil
}

func (b *Backend) SetCollectionBehavior(id platform.WindowID, behavior platform.CollectionBehavior) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.behaviors[id] = behavior
	b.record("collection", id, behavior)
	return nil
}

func (b *Backend) Show(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible[id] = true
	b.record("show", id, nil)
	return nil
}

func (b *Backend) Hide(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible[id] = false
	b.record("hide", id, nil)
	return nil
}

func (b *Backend) Focus(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("focus", id, nil)
	return nil
}

func (b *Backend) Center(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.rects[id]
	var d platform.Rect
	if len(b.DisplayList) > 0 {
		d = b.DisplayList[0].Bounds
	} else {
		d = platform.Rect{Width: 1920, Height: 1080}
	}
	r.X = d.X + (d.Width-r.Width)/2
	r.Y = d.Y + (d.Height-r.Height)/2
	b.rects[id] = r
	b.record("center", id, nil)
	return nil
}
