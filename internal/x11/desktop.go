package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// AllDesktops is the _NET_WM_DESKTOP value for windows shown on every desktop.
const AllDesktops = 0xFFFFFFFF

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// SetWindowDesktop moves a window to the specified virtual desktop.
// We build the _NET_WM_DESKTOP message manually because the xgbutil
// ewmh.WmDesktopReq helper panics on this library version.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop uint32) error {
	return c.sendRootMessage(windowID, "_NET_WM_DESKTOP", desktop)
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "_NET_ACTIVE_WINDOW")
}

// sendRootMessage sends an EWMH client message about windowID to the root
// window. The source indication (pager) follows data.
func (c *Connection) sendRootMessage(windowID xproto.Window, atomName string, data ...uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atomName, err)
	}

	const sourceIndication = 2
	payload := make([]uint32, 0, 5)
	payload = append(payload, data...)
	payload = append(payload, sourceIndication)
	for len(payload) < 5 {
		payload = append(payload, 0)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
