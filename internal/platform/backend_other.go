//go:build !linux

package platform

import "fmt"

// Open returns the no-op backend; only X11 on Linux has a driver.
func Open(display string) (Backend, func(), error) {
	return NopBackend{}, func() {}, fmt.Errorf("no window-system driver for this platform")
}
