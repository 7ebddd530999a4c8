// Package palette shows the action menu through an external dmenu-style
// launcher and dispatches the chosen action to the panel service.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without
// choosing an entry.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row shown by a launcher.
type Item struct {
	Label    string
	Action   string
	Icon     string
	IsHeader bool
	IsActive bool
}

// Launcher shows items and returns the one the user picked.
type Launcher interface {
	Show(prompt string, items []Item) (Item, error)
}

// Launchers in detection order.
var launchers = []string{"rofi", "dmenu"}

var lookPath = exec.LookPath

// Detect returns the first launcher found in PATH.
func Detect() (string, error) {
	for _, name := range launchers {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no menu launcher found in PATH (looked for: %s)", strings.Join(launchers, ", "))
}

// NewLauncher creates a launcher by name: auto, rofi or dmenu.
func NewLauncher(name string) (Launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	switch name {
	case "rofi":
		if _, err := lookPath("rofi"); err != nil {
			return nil, fmt.Errorf("menu launcher %q not found in PATH", name)
		}
		return newRofi(), nil
	case "dmenu":
		if _, err := lookPath("dmenu"); err != nil {
			return nil, fmt.Errorf("menu launcher %q not found in PATH", name)
		}
		return newDmenu(), nil
	default:
		return nil, fmt.Errorf("unknown menu launcher: %q (expected: auto, rofi, dmenu)", name)
	}
}
