package platform

import "fmt"

// NopBackend is the surface for platforms (or sessions) without a window
// system it can drive. Writes succeed without effect; there are no displays
// and no windows, so callers take their documented fallbacks.
type NopBackend struct{}

var _ Backend = NopBackend{}

func (NopBackend) Displays() ([]Display, error) { return nil, nil }

func (NopBackend) ActiveDisplay() (Display, error) {
	return Display{}, fmt.Errorf("no active display")
}

func (NopBackend) DisplayForWindow(WindowID) (Display, error) {
	return Display{}, fmt.Errorf("no display")
}

func (NopBackend) FindWindow(title string) (WindowID, error) {
	return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
}

func (NopBackend) WindowRect(WindowID) (Rect, error) {
	return Rect{}, ErrWindowNotFound
}

func (NopBackend) MoveResize(WindowID, Rect) error                          { return nil }
func (NopBackend) Move(WindowID, int, int) error                            { return nil }
func (NopBackend) SetInputPassthrough(WindowID, bool) error                 { return nil }
func (NopBackend) SetMovableByBackground(WindowID, bool) error              { return nil }
func (NopBackend) SetAcceptsMouseMoved(WindowID, bool) error                { return nil }
func (NopBackend) SetLevel(WindowID, Level) error                           { return nil }
func (NopBackend) SetCollectionBehavior(WindowID, CollectionBehavior) error { return nil }
func (NopBackend) Show(WindowID) error                                      { return nil }
func (NopBackend) Hide(WindowID) error                                      { return nil }
func (NopBackend) Focus(WindowID) error                                     { return nil }
func (NopBackend) Center(WindowID) error                                    { return nil }
