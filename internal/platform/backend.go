// Package platform is the window control surface: the capabilities the
// placement engine and the interaction controller apply their results through.
package platform

import "errors"

// ErrWindowNotFound is returned when a window cannot be located.
var ErrWindowNotFound = errors.New("window not found")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Level is a window stacking tier.
type Level int

const (
	LevelNormal    Level = 0
	LevelStatus    Level = 3
	LevelFloating  Level = 5
	LevelRaised    Level = 10
	LevelPopUpMenu Level = 19
)

// String returns the tier name.
func (l Level) String() string {
	switch l {
	case LevelNormal:
		return "normal"
	case LevelStatus:
		return "status"
	case LevelFloating:
		return "floating"
	case LevelRaised:
		return "raised"
	case LevelPopUpMenu:
		return "popup-menu"
	default:
		return "custom"
	}
}

// CollectionBehavior controls cross-desktop visibility.
type CollectionBehavior uint32

const (
	CanJoinAllSpaces CollectionBehavior = 1 << 0
	Stationary       CollectionBehavior = 1 << 4
)

// AllSpaces is the behavior applied for "show on all spaces".
const AllSpaces = CanJoinAllSpaces | Stationary

// Has reports whether flag is set.
func (b CollectionBehavior) Has(flag CollectionBehavior) bool {
	return b&flag != 0
}

// Backend abstracts window-system operations across platforms. Writes are
// best effort; a platform without a concept implements the call as a no-op.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	DisplayForWindow(windowID WindowID) (Display, error)

	FindWindow(title string) (WindowID, error)
	WindowRect(windowID WindowID) (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Move(windowID WindowID, x, y int) error

	SetInputPassthrough(windowID WindowID, passthrough bool) error
	SetMovableByBackground(windowID WindowID, movable bool) error
	SetAcceptsMouseMoved(windowID WindowID, accepts bool) error
	SetLevel(windowID WindowID, level Level) error
	SetCollectionBehavior(windowID WindowID, behavior CollectionBehavior) error

	Show(windowID WindowID) error
	Hide(windowID WindowID) error
	Focus(windowID WindowID) error
	Center(windowID WindowID) error
}
