package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// _NET_WM_STATE client message actions.
const (
	stateRemove = 0
	stateAdd    = 1
)

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// MoveWindow moves a window without touching its size.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	return nil
}

// WindowGeometry returns the root-relative position and size of a window.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry of 0x%x: %w", uint32(windowID), err)
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates of 0x%x: %w", uint32(windowID), err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// MapWindow shows a window.
func (c *Connection) MapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Map()
}

// UnmapWindow hides a window.
func (c *Connection) UnmapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Unmap()
}

// SetAbove adds or removes _NET_WM_STATE_ABOVE.
func (c *Connection) SetAbove(windowID xproto.Window, above bool) error {
	return c.setState(windowID, above, "_NET_WM_STATE_ABOVE")
}

// SetSticky adds or removes _NET_WM_STATE_STICKY.
func (c *Connection) SetSticky(windowID xproto.Window, sticky bool) error {
	return c.setState(windowID, sticky, "_NET_WM_STATE_STICKY")
}

func (c *Connection) setState(windowID xproto.Window, on bool, atom string) error {
	action := stateRemove
	if on {
		action = stateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, atom); err != nil {
		return fmt.Errorf("failed to update %s: %w", atom, err)
	}
	return nil
}

// FindWindowByTitle searches the EWMH client list for a window whose
// _NET_WM_NAME (or WM_NAME) equals title.
func (c *Connection) FindWindowByTitle(title string) (xproto.Window, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("empty window title")
	}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	for _, win := range clients {
		if c.windowTitle(win) == title {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window titled %q", title)
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	if name, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(name)
	}
	return ""
}
