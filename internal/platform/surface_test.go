package platform_test

import (
	"errors"
	"testing"

	"github.com/1broseidon/floatpane/internal/platform"
	"github.com/1broseidon/floatpane/internal/platform/platformtest"
)

func TestSurface_ResolvesByTitleOnEveryCall(t *testing.T) {
	backend := platformtest.New(platformtest.Display(0, 0, 0, 1920, 1080))
	s := platform.NewSurface(backend, "floatpane")

	if _, err := s.Rect(); !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound before the window exists, got %v", err)
	}
	if err := s.Show(); !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound from a write, got %v", err)
	}

	id := backend.AddWindow("floatpane", platform.Rect{X: 10, Y: 20, Width: 400, Height: 300})
	if err := s.MoveResize(platform.Rect{X: 50, Y: 60, Width: 400, Height: 300}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := backend.Rect(id); got.X != 50 || got.Y != 60 {
		t.Fatalf("window rect = %+v, want origin (50,60)", got)
	}
	d, err := s.Display()
	if err != nil || d.ID != 0 {
		t.Fatalf("Display() = %+v, %v", d, err)
	}
}

func TestSurface_WritesReachBackend(t *testing.T) {
	backend := platformtest.New()
	id := backend.AddWindow("floatpane", platform.Rect{Width: 400, Height: 300})
	s := platform.NewSurface(backend, "floatpane")

	for _, err := range []error{
		s.SetInputPassthrough(true),
		s.SetLevel(platform.LevelStatus),
		s.SetCollectionBehavior(platform.AllSpaces),
		s.Hide(),
	} {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !backend.Passthrough(id) || backend.Level(id) != platform.LevelStatus || backend.Visible(id) {
		t.Fatalf("writes not applied: passthrough=%v level=%v visible=%v", backend.Passthrough(id), backend.Level(id), backend.Visible(id))
	}
	if !backend.Behavior(id).Has(platform.CanJoinAllSpaces) || !backend.Behavior(id).Has(platform.Stationary) {
		t.Fatalf("expected all-spaces behavior, got %v", backend.Behavior(id))
	}
}

func TestNopBackend(t *testing.T) {
	var b platform.NopBackend
	displays, err := b.Displays()
	if err != nil || len(displays) != 0 {
		t.Fatalf("Displays() = %v, %v; want empty", displays, err)
	}
	if _, err := b.FindWindow("floatpane"); err == nil {
		t.Fatalf("expected lookup error")
	}
	if err := b.SetInputPassthrough(1, true); err != nil {
		t.Fatalf("writes must be no-ops, got %v", err)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[platform.Level]string{
		platform.LevelNormal:    "normal",
		platform.LevelPopUpMenu: "popup-menu",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestOpen_UnreachableDisplayFallsBackToNop(t *testing.T) {
	backend, closeFn, err := platform.Open(":987")
	if err == nil {
		closeFn()
		t.Skip("display :987 is reachable")
	}
	if _, ok := backend.(platform.NopBackend); !ok {
		t.Fatalf("expected NopBackend alongside the error, got %T", backend)
	}
	closeFn()
	displays, err := backend.Displays()
	if err != nil || len(displays) != 0 {
		t.Fatalf("Displays() = %v, %v; want empty", displays, err)
	}
}
