package placement

import (
	"math"

	"github.com/1broseidon/floatpane/internal/monitor"
)

const (
	settingsGap    = 20.0
	settingsBuffer = 50.0
	alternateSlack = 100.0
	cornerOffset   = 50.0
)

// Rule identifies which settings placement rule produced a position.
type Rule int

const (
	RuleNone Rule = iota
	RuleRight
	RuleLeft
	RuleBelow
	RuleAbove
	RuleAlternateMonitor
	RuleCorner
)

func (r Rule) String() string {
	switch r {
	case RuleRight:
		return "right"
	case RuleLeft:
		return "left"
	case RuleBelow:
		return "below"
	case RuleAbove:
		return "above"
	case RuleAlternateMonitor:
		return "alternate-monitor"
	case RuleCorner:
		return "corner"
	default:
		return "none"
	}
}

// Decision is a resolved settings placement.
type Decision struct {
	Point   Point
	Rule    Rule
	Monitor monitor.Info
}

// ResolveSettings places a settings panel of size settings beside the
// primary panel. ok is false when monitors is empty; the caller then centres
// the panel with the host's own capability.
func ResolveSettings(primary Rect, settings Size, monitors []monitor.Info) (Point, bool) {
	d, ok := ExplainSettings(primary, settings, monitors)
	return d.Point, ok
}

// ExplainSettings is ResolveSettings with the rule and monitor that fired.
//
// Rules are tried in order against the monitor holding the primary panel's
// centre (monitor 0 when none does): right, left, below, above, centred on
// the first other monitor with room to spare, then a corner offset. The
// result is always clamped into the chosen monitor.
func ExplainSettings(primary Rect, settings Size, monitors []monitor.Info) (Decision, bool) {
	if len(monitors) == 0 {
		return Decision{}, false
	}

	c := primary.Center()
	mon, ok := monitor.Containing(monitors, c.X, c.Y)
	if !ok {
		mon = monitors[0]
	}

	var pt Point
	rule := RuleNone
	p, s, m := primary, settings, mon

	switch {
	case p.X+p.Width+s.Width+settingsGap+settingsBuffer <= m.X+m.Width:
		rule = RuleRight
		pt = Point{X: p.X + p.Width + settingsGap, Y: clamp(p.Y, m.Y, m.Y+m.Height-s.Height)}
	case p.X-s.Width-settingsGap >= m.X+settingsBuffer:
		rule = RuleLeft
		pt = Point{X: p.X - s.Width - settingsGap, Y: clamp(p.Y, m.Y, m.Y+m.Height-s.Height)}
	case p.Y+p.Height+s.Height+settingsGap <= m.Y+m.Height-settingsBuffer:
		rule = RuleBelow
		pt = Point{X: clamp(p.X, m.X, m.X+m.Width-s.Width), Y: p.Y + p.Height + settingsGap}
	case p.Y-s.Height-settingsGap >= m.Y+settingsBuffer:
		rule = RuleAbove
		pt = Point{X: clamp(p.X, m.X, m.X+m.Width-s.Width), Y: p.Y - s.Height - settingsGap}
	}

	if rule == RuleNone && len(monitors) > 1 {
		for _, alt := range monitors {
			if alt.Index == mon.Index {
				continue
			}
			if alt.Width >= s.Width+alternateSlack && alt.Height >= s.Height+alternateSlack {
				rule = RuleAlternateMonitor
				mon = alt
				pt = Point{
					X: alt.X + (alt.Width-s.Width)/2,
					Y: alt.Y + (alt.Height-s.Height)/2,
				}
				break
			}
		}
	}

	if rule == RuleNone {
		rule = RuleCorner
		pt = Point{X: mon.X + cornerOffset, Y: mon.Y + cornerOffset}
	}

	pt.X = clamp(pt.X, mon.X, mon.X+mon.Width-s.Width)
	pt.Y = clamp(pt.Y, mon.Y, mon.Y+mon.Height-s.Height)

	return Decision{Point: pt, Rule: rule, Monitor: mon}, true
}

// clamp bounds v to [lo, hi]. When the range is inverted lo wins, keeping
// an oversized panel's origin on the monitor.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
