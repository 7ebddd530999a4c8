package x11

import (
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
)

// SetInputPassthrough empties the window's SHAPE input region so pointer
// events fall through to whatever is underneath. Disabling restores the
// default input region (the whole window).
func (c *Connection) SetInputPassthrough(windowID xproto.Window, passthrough bool) error {
	if err := c.initShape(); err != nil {
		return err
	}

	conn := c.XUtil.Conn()
	if passthrough {
		return shape.RectanglesChecked(
			conn,
			shape.SoSet,
			shape.SkInput,
			xproto.ClipOrderingUnsorted,
			windowID,
			0, 0,
			nil,
		).Check()
	}
	return shape.MaskChecked(
		conn,
		shape.SoSet,
		shape.SkInput,
		windowID,
		0, 0,
		xproto.PixmapNone,
	).Check()
}
