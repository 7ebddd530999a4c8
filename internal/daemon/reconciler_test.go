package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/floatpane/internal/placement"
)

type fakePanel struct {
	mu       sync.Mutex
	onScreen bool
	placeErr error
	panics   bool
	placed   int
}

func (p *fakePanel) MainOnScreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.panics {
		panic("boom")
	}
	return p.onScreen
}

func (p *fakePanel) PlaceDefault() (placement.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.placeErr != nil {
		return placement.Point{}, p.placeErr
	}
	p.placed++
	p.onScreen = true
	return placement.Point{X: 50, Y: 50}, nil
}

func (p *fakePanel) placements() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.placed
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcileNow_OnScreenIsLeftAlone(t *testing.T) {
	panel := &fakePanel{onScreen: true}
	r := NewReconciler(ReconcilerConfig{Logger: quietLogger()}, panel)

	if r.ReconcileNow() {
		t.Fatalf("expected no re-placement")
	}
	if panel.placements() != 0 {
		t.Fatalf("placements = %d, want 0", panel.placements())
	}
}

func TestReconcileNow_OffScreenReplaces(t *testing.T) {
	panel := &fakePanel{}
	r := NewReconciler(ReconcilerConfig{Logger: quietLogger()}, panel)

	if !r.ReconcileNow() {
		t.Fatalf("expected re-placement")
	}
	if r.ReconcileNow() {
		t.Fatalf("second pass should find the panel on screen")
	}
	if panel.placements() != 1 {
		t.Fatalf("placements = %d, want 1", panel.placements())
	}
}

func TestReconcileNow_PlacementErrorIsNotFatal(t *testing.T) {
	panel := &fakePanel{placeErr: errors.New("window gone")}
	r := NewReconciler(ReconcilerConfig{Logger: quietLogger()}, panel)

	if r.ReconcileNow() {
		t.Fatalf("failed placement must not report success")
	}
}

func TestReconcileNow_RecoversPanic(t *testing.T) {
	panel := &fakePanel{panics: true}
	r := NewReconciler(ReconcilerConfig{Logger: quietLogger()}, panel)

	if r.ReconcileNow() {
		t.Fatalf("panicking pass must not report success")
	}
}

func TestNewReconciler_DefaultInterval(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{}, &fakePanel{})
	if r.Interval() != DefaultInterval {
		t.Fatalf("interval = %v, want %v", r.Interval(), DefaultInterval)
	}
}

func TestRun_StopsOnCancelAndReconciles(t *testing.T) {
	panel := &fakePanel{}
	r := NewReconciler(ReconcilerConfig{Interval: 10 * time.Millisecond, Logger: quietLogger()}, panel)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for panel.placements() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if panel.placements() != 1 {
		t.Fatalf("placements = %d, want 1", panel.placements())
	}
}
