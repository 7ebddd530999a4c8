// Package interaction switches the main panel between taking mouse input
// and letting it fall through to whatever is underneath.
package interaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/floatpane/internal/platform"
)

// State is the panel's interaction mode.
type State int

const (
	// Interactive means the panel consumes mouse input.
	Interactive State = iota
	// ClickThrough means mouse input passes to the window beneath.
	ClickThrough
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Interactive:
		return "interactive"
	case ClickThrough:
		return "click-through"
	default:
		return "unknown"
	}
}

// ParseState parses the names produced by String. "on" and "off" refer to
// click-through.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interactive", "off":
		return Interactive, nil
	case "click-through", "clickthrough", "on":
		return ClickThrough, nil
	default:
		return Interactive, fmt.Errorf("unknown interaction state %q", s)
	}
}

// FromClickThrough maps a click-through flag to a State.
func FromClickThrough(enabled bool) State {
	if enabled {
		return ClickThrough
	}
	return Interactive
}

// Status is a point-in-time view of the controller.
type Status struct {
	State State
	// TemporaryOverride is set while a temporary interactive window is open.
	TemporaryOverride bool
	// Expires is when the temporary override reverts. Zero when inactive.
	Expires time.Time
}

// Observer receives the new state after every completed transition.
type Observer func(State)

// Surface is the subset of window control the controller writes through.
type Surface interface {
	SetInputPassthrough(on bool) error
	SetMovableByBackground(on bool) error
	SetAcceptsMouseMoved(on bool) error
	SetLevel(level platform.Level) error
}

type properties struct {
	passthrough bool
	movable     bool
	mouseMoved  bool
	level       platform.Level
}

func propertiesFor(s State) properties {
	if s == ClickThrough {
		return properties{passthrough: true, movable: false, mouseMoved: false, level: platform.LevelStatus}
	}
	return properties{passthrough: false, movable: true, mouseMoved: true, level: platform.LevelFloating}
}
