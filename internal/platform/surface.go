package platform

import "fmt"

// Surface binds a Backend to one window. The window is located by title on
// every call so a restarted panel is picked up without re-wiring.
type Surface struct {
	backend Backend
	title   string
}

// NewSurface creates a surface for the window titled title.
func NewSurface(backend Backend, title string) *Surface {
	return &Surface{backend: backend, title: title}
}

// Title returns the title used to locate the window.
func (s *Surface) Title() string {
	return s.title
}

// ID resolves the current window id.
func (s *Surface) ID() (WindowID, error) {
	id, err := s.backend.FindWindow(s.title)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrWindowNotFound, s.title, err)
	}
	return id, nil
}

func (s *Surface) with(fn func(WindowID) error) error {
	id, err := s.ID()
	if err != nil {
		return err
	}
	return fn(id)
}

// Rect returns the window's outer rectangle.
func (s *Surface) Rect() (Rect, error) {
	var r Rect
	err := s.with(func(id WindowID) error {
		var err error
		r, err = s.backend.WindowRect(id)
		return err
	})
	return r, err
}

// Display returns the display the window is on.
func (s *Surface) Display() (Display, error) {
	var d Display
	err := s.with(func(id WindowID) error {
		var err error
		d, err = s.backend.DisplayForWindow(id)
		return err
	})
	return d, err
}

func (s *Surface) MoveResize(bounds Rect) error {
	return s.with(func(id WindowID) error { return s.backend.MoveResize(id, bounds) })
}

func (s *Surface) Move(x, y int) error {
	return s.with(func(id WindowID) error { return s.backend.Move(id, x, y) })
}

func (s *Surface) SetInputPassthrough(on bool) error {
	return s.with(func(id WindowID) error { return s.backend.SetInputPassthrough(id, on) })
}

func (s *Surface) SetMovableByBackground(on bool) error {
	return s.with(func(id WindowID) error { return s.backend.SetMovableByBackground(id, on) })
}

func (s *Surface) SetAcceptsMouseMoved(on bool) error {
	return s.with(func(id WindowID) error { return s.backend.SetAcceptsMouseMoved(id, on) })
}

func (s *Surface) SetLevel(level Level) error {
	return s.with(func(id WindowID) error { return s.backend.SetLevel(id, level) })
}

func (s *Surface) SetCollectionBehavior(behavior CollectionBehavior) error {
	return s.with(func(id WindowID) error { return s.backend.SetCollectionBehavior(id, behavior) })
}

func (s *Surface) Show() error {
	return s.with(s.backend.Show)
}

func (s *Surface) Hide() error {
	return s.with(s.backend.Hide)
}

func (s *Surface) Focus() error {
	return s.with(s.backend.Focus)
}

func (s *Surface) Center() error {
	return s.with(s.backend.Center)
}
