package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	shapeOnce sync.Once
	shapeErr  error
}

// NewConnectionDisplay connects to the X11 server on display (":1"); empty
// uses $DISPLAY. Keybind support is initialised for global hotkeys.
func NewConnectionDisplay(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// initShape lazily enables the SHAPE extension used for input regions.
func (c *Connection) initShape() error {
	c.shapeOnce.Do(func() {
		if err := shape.Init(c.XUtil.Conn()); err != nil {
			c.shapeErr = fmt.Errorf("shape extension unavailable: %w", err)
		}
	})
	return c.shapeErr
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
