package monitor

import (
	"errors"
	"testing"

	"github.com/1broseidon/floatpane/internal/platform"
	"github.com/1broseidon/floatpane/internal/platform/platformtest"
)

func TestCatalogList_EnumerationOrder(t *testing.T) {
	fake := platformtest.New(
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 2560, 1440),
	)
	got := NewCatalog(fake, "main", nil).List()
	if len(got) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(got))
	}
	if got[0].Index != 0 || !got[0].Primary {
		t.Fatalf("monitor 0 = %+v, want index 0 primary", got[0])
	}
	if got[1].Index != 1 || got[1].Primary || got[1].X != 1920 || got[1].Width != 2560 {
		t.Fatalf("monitor 1 = %+v", got[1])
	}
	if got[1].Name != "OUT-1" {
		t.Fatalf("monitor 1 name = %q", got[1].Name)
	}
}

func TestCatalogList_FallbackOnEmptyOrError(t *testing.T) {
	empty := platformtest.New()
	if got := NewCatalog(empty, "main", nil).List(); len(got) != 1 || got[0] != Fallback() {
		t.Fatalf("empty enumeration = %+v, want [Fallback]", got)
	}

	failing := platformtest.New(platformtest.Display(0, 0, 0, 800, 600))
	failing.DisplayErr = errors.New("randr unavailable")
	if got := NewCatalog(failing, "main", nil).List(); len(got) != 1 || got[0] != Fallback() {
		t.Fatalf("failed enumeration = %+v, want [Fallback]", got)
	}

	if got := NewCatalog(platform.NopBackend{}, "main", nil).List(); len(got) != 1 || got[0] != Fallback() {
		t.Fatalf("nop backend = %+v, want [Fallback]", got)
	}
}

func TestCatalogList_NotCached(t *testing.T) {
	fake := platformtest.New(platformtest.Display(0, 0, 0, 1920, 1080))
	c := NewCatalog(fake, "main", nil)
	if n := len(c.List()); n != 1 {
		t.Fatalf("expected 1 monitor, got %d", n)
	}
	fake.DisplayList = append(fake.DisplayList, platformtest.Display(1, 1920, 0, 1920, 1080))
	if n := len(c.List()); n != 2 {
		t.Fatalf("expected hot-plugged monitor to appear, got %d", n)
	}
}

func TestCatalogCurrent(t *testing.T) {
	fake := platformtest.New(
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 1920, 1080),
	)
	c := NewCatalog(fake, "main", nil)
	if _, ok := c.Current(); ok {
		t.Fatal("expected no current monitor without a main window")
	}

	fake.AddWindow("main", platform.Rect{X: 2000, Y: 100, Width: 400, Height: 300})
	cur, ok := c.Current()
	if !ok {
		t.Fatal("expected a current monitor")
	}
	if cur.Index != 1 || cur.X != 1920 {
		t.Fatalf("current = %+v, want monitor 1", cur)
	}
}

func TestCatalogCurrent_UnlistedDisplay(t *testing.T) {
	fake := platformtest.New(
		platformtest.Display(0, 0, 0, 1920, 1080),
		platformtest.Display(1, 1920, 0, 1920, 1080),
	)
	fake.AddWindow("main", platform.Rect{X: 2000, Y: 100, Width: 400, Height: 300})
	// Enumeration fails, so List holds only the fallback at the origin while
	// the window still reports the display at x=1920.
	fake.DisplayErr = errors.New("randr gone")

	c := NewCatalog(fake, "main", nil)
	if cur, ok := c.Current(); ok {
		t.Fatalf("expected no current monitor, got %+v", cur)
	}
}

func TestContaining_HalfOpen(t *testing.T) {
	mons := []Info{
		{Index: 0, X: 0, Y: 0, Width: 100, Height: 100},
		{Index: 1, X: 100, Y: 0, Width: 100, Height: 100},
	}
	if m, ok := Containing(mons, 99, 50); !ok || m.Index != 0 {
		t.Fatalf("(99,50) -> %+v %v", m, ok)
	}
	if m, ok := Containing(mons, 100, 50); !ok || m.Index != 1 {
		t.Fatalf("(100,50) -> %+v %v", m, ok)
	}
	if _, ok := Containing(mons, 200, 50); ok {
		t.Fatal("(200,50) should be outside every monitor")
	}
}

func TestAspectRatio(t *testing.T) {
	if got := AspectRatio(Info{Width: 1920, Height: 1080}); got < 1.77 || got > 1.78 {
		t.Fatalf("AspectRatio = %v", got)
	}
	if got := AspectRatio(Info{Width: 100}); got != 0 {
		t.Fatalf("degenerate AspectRatio = %v, want 0", got)
	}
}
