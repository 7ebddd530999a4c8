package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/floatpane/internal/placement"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 10 * time.Second

// Panel is the part of the panel service the reconciler drives.
type Panel interface {
	MainOnScreen() bool
	PlaceDefault() (placement.Point, error)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks that the main panel is still on a monitor
// and re-applies the placement request when the layout moved under it.
type Reconciler struct {
	interval time.Duration
	panel    Panel
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, panel Panel) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		panel:    panel,
		logger:   logger,
	}
}

// Interval returns the effective polling interval.
func (r *Reconciler) Interval() time.Duration {
	return r.interval
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single pass and reports whether it re-placed the panel.
func (r *Reconciler) reconcile() (replaced bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
			replaced = false
		}
	}()

	if r.panel.MainOnScreen() {
		return false
	}

	r.logger.Info("reconciler: main panel is off every monitor, re-placing")
	pos, err := r.panel.PlaceDefault()
	if err != nil {
		r.logger.Warn("reconciler: failed to re-place main panel", "error", err)
		return false
	}
	r.logger.Info("reconciler: main panel re-placed", "x", pos.X, "y", pos.Y)
	return true
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() bool {
	return r.reconcile()
}
