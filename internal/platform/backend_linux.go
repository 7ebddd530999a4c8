//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/floatpane/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Open connects to display (empty means $DISPLAY). The returned func closes
// the connection. When the display is unreachable Open returns NopBackend
// together with the error so callers can continue on fallbacks.
func Open(display string) (Backend, func(), error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return NopBackend{}, func() {}, fmt.Errorf("failed to connect to X11: %w", err)
	}
	b := &LinuxBackend{conn: conn}
	return b, b.Disconnect, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// QuitEventLoop stops a running EventLoop.
func (b *LinuxBackend) QuitEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays in enumeration order.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}
	sort.SliceStable(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})
	return displays, nil
}

// ActiveDisplay returns the display under the pointer.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	mon, err := conn.MonitorForPointer()
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(*mon), nil
}

// DisplayForWindow returns the display containing the window's center.
func (b *LinuxBackend) DisplayForWindow(windowID WindowID) (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	mon, err := conn.MonitorForWindow(xproto.Window(windowID))
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(*mon), nil
}

func (b *LinuxBackend) FindWindow(title string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	win, err := conn.FindWindowByTitle(title)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWindowNotFound, err)
	}
	return WindowID(win), nil
}

func (b *LinuxBackend) WindowRect(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	x, y, w, h, err := conn.WindowGeometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) Move(windowID WindowID, x, y int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveWindow(xproto.Window(windowID), x, y)
}

// SetInputPassthrough empties (or restores) the window's input shape.
func (b *LinuxBackend) SetInputPassthrough(windowID WindowID, passthrough bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetInputPassthrough(xproto.Window(windowID), passthrough)
}

// SetMovableByBackground is a no-op: X11 window managers own dragging.
func (b *LinuxBackend) SetMovableByBackground(WindowID, bool) error {
	return nil
}

// SetAcceptsMouseMoved is a no-op: motion events follow the input shape.
func (b *LinuxBackend) SetAcceptsMouseMoved(WindowID, bool) error {
	return nil
}

// SetLevel maps any tier above normal onto _NET_WM_STATE_ABOVE.
func (b *LinuxBackend) SetLevel(windowID WindowID, level Level) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetAbove(xproto.Window(windowID), level > LevelNormal)
}

// SetCollectionBehavior makes the window sticky across desktops when
// CanJoinAllSpaces is set, and pins it to the current desktop otherwise.
func (b *LinuxBackend) SetCollectionBehavior(windowID WindowID, behavior CollectionBehavior) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	win := xproto.Window(windowID)
	all := behavior.Has(CanJoinAllSpaces)
	if err := conn.SetSticky(win, all); err != nil {
		return err
	}
	desktop, err := targetDesktop(all, conn.GetCurrentDesktop)
	if err != nil {
		return err
	}
	return conn.SetWindowDesktop(win, desktop)
}

// targetDesktop is the _NET_WM_DESKTOP value for a window that is on every
// desktop (all) or pinned to the current one.
func targetDesktop(all bool, current func() (int, error)) (uint32, error) {
	if all {
		return x11.AllDesktops, nil
	}
	desktop, err := current()
	if err != nil {
		return 0, fmt.Errorf("pin to current desktop: %w", err)
	}
	return uint32(desktop), nil
}

func (b *LinuxBackend) Show(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	conn.MapWindow(xproto.Window(windowID))
	return nil
}

func (b *LinuxBackend) Hide(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	conn.UnmapWindow(xproto.Window(windowID))
	return nil
}

func (b *LinuxBackend) Focus(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(windowID))
}

// Center moves the window to the middle of the display it is on.
func (b *LinuxBackend) Center(windowID WindowID) error {
	rect, err := b.WindowRect(windowID)
	if err != nil {
		return err
	}
	display, err := b.DisplayForWindow(windowID)
	if err != nil {
		if display, err = b.ActiveDisplay(); err != nil {
			return err
		}
	}
	x := display.Bounds.X + (display.Bounds.Width-rect.Width)/2
	y := display.Bounds.Y + (display.Bounds.Height-rect.Height)/2
	return b.Move(windowID, x, y)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}
