package interaction

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTemporaryDuration is how long a temporary interactive request lasts.
const DefaultTemporaryDuration = 3 * time.Second

// Options configures a Controller.
type Options struct {
	Initial           State
	TemporaryDuration time.Duration
	Logger            *slog.Logger
	// Lock, when set, replaces the controller's own mutex. Pass the lock
	// of any other writer of the same window so their writes never
	// interleave.
	Lock sync.Locker
}

// Controller owns the interaction state of one panel and is the only writer
// of its input properties. All methods are safe for concurrent use; the
// revert timer re-enters through the same mutex. Observers are called in
// transition order and must not start another transition themselves.
type Controller struct {
	mu       sync.Locker
	notifyMu sync.Mutex

	surface  Surface
	logger   *slog.Logger
	duration time.Duration
	now      func() time.Time

	state      State
	temporary  bool
	expires    time.Time
	generation uint64
	timer      *time.Timer

	observers []Observer
}

// New creates a controller. The initial state is recorded but not applied;
// call Apply once the surface exists.
func New(surface Surface, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := opts.TemporaryDuration
	if d <= 0 {
		d = DefaultTemporaryDuration
	}
	mu := opts.Lock
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Controller{
		mu:       mu,
		surface:  surface,
		logger:   logger,
		duration: d,
		now:      time.Now,
		state:    opts.Initial,
	}
}

// Subscribe registers an observer.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the state together with any pending temporary override.
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Status{State: c.state, TemporaryOverride: c.temporary}
	if c.temporary {
		st.Expires = c.expires
	}
	return st
}

// Apply writes the current state to the surface without notifying.
func (c *Controller) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(c.state)
}

// Toggle flips the state, applies it and notifies observers.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	next := ClickThrough
	if c.state == ClickThrough {
		next = Interactive
	}
	c.transitionLocked(next)
	c.notifyAndUnlock(next)
	return next
}

// Set forces the state. Observers are notified even when it is unchanged.
func (c *Controller) Set(s State) {
	c.mu.Lock()
	c.transitionLocked(s)
	c.notifyAndUnlock(s)
}

// RequestTemporaryInteractive opens the panel to input for the temporary
// duration and then restores click-through. It only applies in ClickThrough
// and returns false otherwise. A repeat request restarts the window.
func (c *Controller) RequestTemporaryInteractive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != ClickThrough {
		c.logger.Debug("temporary interactive ignored", "state", c.state)
		return false
	}

	c.cancelRevertLocked()
	c.write("input passthrough", c.surface.SetInputPassthrough(false))

	gen := c.generation
	c.temporary = true
	c.expires = c.now().Add(c.duration)
	c.timer = time.AfterFunc(c.duration, func() { c.revert(gen) })

	c.logger.Info("temporary interactive", "duration", c.duration, "expires", c.expires)
	return true
}

// Stop cancels any pending revert.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelRevertLocked()
}

func (c *Controller) revert(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || !c.temporary {
		return
	}
	c.temporary = false
	c.expires = time.Time{}
	c.timer = nil
	if c.state == ClickThrough {
		c.write("input passthrough", c.surface.SetInputPassthrough(true))
	}
	c.logger.Info("temporary interactive expired")
}

func (c *Controller) transitionLocked(s State) {
	c.cancelRevertLocked()
	prev := c.state
	c.state = s
	c.applyLocked(s)
	c.logger.Info("interaction mode", "from", prev, "to", s)
}

// cancelRevertLocked invalidates any outstanding timer. The generation bump
// covers a timer that already fired and is waiting on the mutex.
func (c *Controller) cancelRevertLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.temporary = false
	c.expires = time.Time{}
}

func (c *Controller) applyLocked(s State) {
	p := propertiesFor(s)
	c.write("input passthrough", c.surface.SetInputPassthrough(p.passthrough))
	c.write("movable by background", c.surface.SetMovableByBackground(p.movable))
	c.write("accepts mouse moved", c.surface.SetAcceptsMouseMoved(p.mouseMoved))
	c.write("level", c.surface.SetLevel(p.level))
}

func (c *Controller) write(what string, err error) {
	if err != nil {
		c.logger.Warn("interaction write failed", "property", what, "error", err)
	}
}

// notifyAndUnlock releases c.mu and calls the observers with s. notifyMu is
// taken before c.mu is released, so a later transition cannot notify ahead
// of this one.
func (c *Controller) notifyAndUnlock(s State) {
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, o := range observers {
		o(s)
	}
}
