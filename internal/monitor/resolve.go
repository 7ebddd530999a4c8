package monitor

import "strconv"

// Selector values understood by Resolve.
const (
	SelectorAuto    = "auto"
	SelectorPrimary = "primary"
	SelectorCurrent = "current"
)

// Resolve picks a monitor for selector:
//
//	"primary"          first monitor
//	"current"          monitor whose origin equals current's origin
//	"0", "1", ...      that index when in range
//	anything else      same as "current"
//
// When nothing matches it returns the first monitor, or Fallback for an
// empty list.
func Resolve(selector string, monitors []Info, current Info, haveCurrent bool) Info {
	if len(monitors) == 0 {
		return Fallback()
	}

	switch selector {
	case SelectorPrimary:
		return monitors[0]
	case SelectorCurrent:
		return resolveCurrent(monitors, current, haveCurrent)
	}

	if idx, err := strconv.Atoi(selector); err == nil && idx >= 0 {
		if idx < len(monitors) {
			return monitors[idx]
		}
		return monitors[0]
	}

	return resolveCurrent(monitors, current, haveCurrent)
}

func resolveCurrent(monitors []Info, current Info, haveCurrent bool) Info {
	if haveCurrent {
		for _, m := range monitors {
			if m.X == current.X && m.Y == current.Y {
				return m
			}
		}
	}
	return monitors[0]
}

// ValidSelector reports whether s is a selector Resolve understands without
// falling through to the default branch.
func ValidSelector(s string) bool {
	switch s {
	case SelectorAuto, SelectorPrimary, SelectorCurrent:
		return true
	}
	idx, err := strconv.Atoi(s)
	return err == nil && idx >= 0
}
