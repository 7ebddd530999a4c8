//go:build linux

package platform

import (
	"errors"
	"testing"

	"github.com/1broseidon/floatpane/internal/x11"
)

func TestTargetDesktop(t *testing.T) {
	called := false
	current := func() (int, error) {
		called = true
		return 2, nil
	}

	got, err := targetDesktop(true, current)
	if err != nil || got != x11.AllDesktops {
		t.Fatalf("targetDesktop(all) = %d, %v; want all desktops", got, err)
	}
	if called {
		t.Fatal("current desktop should not be read for all desktops")
	}

	got, err = targetDesktop(false, current)
	if err != nil || got != 2 {
		t.Fatalf("targetDesktop(current) = %d, %v; want 2", got, err)
	}
}

func TestTargetDesktop_ReadFailureIsReturned(t *testing.T) {
	wmErr := errors.New("no _NET_CURRENT_DESKTOP")
	_, err := targetDesktop(false, func() (int, error) { return 0, wmErr })
	if !errors.Is(err, wmErr) {
		t.Fatalf("expected the desktop read error, got %v", err)
	}
}
