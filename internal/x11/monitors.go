package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR, in CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// MonitorForWindow returns the monitor containing the center of windowID.
func (c *Connection) MonitorForWindow(windowID xproto.Window) (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	x, y, w, h, err := c.WindowGeometry(windowID)
	if err != nil {
		return nil, err
	}
	if mon := monitorAt(monitors, x+w/2, y+h/2); mon != nil {
		return mon, nil
	}
	return nil, fmt.Errorf("window 0x%x is not on any monitor", uint32(windowID))
}

// MonitorForPointer returns the monitor under the mouse cursor.
func (c *Connection) MonitorForPointer() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}

	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query pointer: %w", err)
	}
	if mon := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); mon != nil {
		return mon, nil
	}
	if len(monitors) > 0 {
		return &monitors[0], nil
	}
	return nil, fmt.Errorf("no monitors found")
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		mon := &monitors[i]
		if x >= mon.X && x < mon.X+mon.Width && y >= mon.Y && y < mon.Y+mon.Height {
			return mon
		}
	}
	return nil
}
