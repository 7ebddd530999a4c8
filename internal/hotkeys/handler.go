package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/floatpane/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ErrNoX11 is returned when the backend exposes no X11 connection.
var ErrNoX11 = errors.New("global hotkeys need an X11 backend")

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, ErrNoX11
	}
	if logger == nil {
		logger = slog.Default()
	}

	xu := accessor.XUtil()
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   accessor.RootWindow(),
		logger: logger,
	}, nil
}

// RegisterAll binds every enabled binding. Callbacks run on the X event
// loop goroutine.
func (h *Handler) RegisterAll(bindings []Binding) error {
	for _, b := range Enabled(bindings) {
		b := b
		if err := h.RegisterFunc(b.Keys, func() {
			h.logger.Info("hotkey triggered", "action", b.Name, "keys", b.Keys)
			b.Run()
		}); err != nil {
			return fmt.Errorf("failed to register %s hotkey %q: %w", b.Name, b.Keys, err)
		}
		h.logger.Info("hotkey registered", "action", b.Name, "keys", b.Keys)
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// Enabled drops bindings whose key sequence is empty.
func Enabled(bindings []Binding) []Binding {
	out := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Keys) == "" || b.Run == nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the lock modifiers, including
// none, so bindings fire regardless of lock state.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	masks := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		masks = append(masks, mask)
	}
	return masks
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
