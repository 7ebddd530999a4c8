package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/daemon"
	"github.com/1broseidon/floatpane/internal/hotkeys"
	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/palette"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/placement"
	"github.com/1broseidon/floatpane/internal/runtimepath"
)

// eventLooper is implemented by backends with a blocking event loop.
type eventLooper interface {
	EventLoop()
	QuitEventLoop()
}

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Own the panel windows: hotkeys, action menu and reconciler (foreground)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd.Context())
		},
	}
}

func runDaemon(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)
	log.Printf("Configuration loaded from %s", resolvedConfigPath())

	lock, err := runtimepath.AcquireLock()
	if err != nil {
		if errors.Is(err, runtimepath.ErrLocked) {
			return err
		}
		return fmt.Errorf("failed to acquire daemon lock: %w", err)
	}
	defer lock.Release()

	backend, disconnect, err := openBackend(cfg.Display)
	if err != nil {
		if backend == nil {
			return fmt.Errorf("failed to connect to display: %w", err)
		}
		logger.Warn("display unavailable, running without window control", "error", err)
	}
	closeBackend := sync.OnceFunc(disconnect)
	defer closeBackend()

	svc := panel.New(backend, cfg, logger)
	defer svc.Stop()
	svc.Controller().Subscribe(func(state interaction.State) {
		logger.Info("interaction state changed", "state", state)
	})
	svc.Init()
	log.Println("floatpane daemon started")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	openMenu := menuOpener(cfg, svc, logger, cancel)

	if h, err := hotkeys.NewHandler(backend, logger); err != nil {
		logger.Warn("global hotkeys disabled", "error", err)
	} else if err := h.RegisterAll(hotkeys.Bindings(cfg.Hotkeys, svc, openMenu, logger)); err != nil {
		logger.Warn("failed to register hotkeys", "error", err)
	}

	if interval := cfg.ReconcileInterval(); interval > 0 {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: interval,
			Logger:   logger,
		}, svc)
		go reconciler.Run(ctx)
	}

	go handleSignals(ctx, cancel, svc, logger)

	looper, ok := backend.(eventLooper)
	if !ok {
		<-ctx.Done()
		log.Println("Shutting down floatpane daemon...")
		return nil
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down floatpane daemon...")
		looper.QuitEventLoop()
		// Wakes the event loop if it is blocked waiting for an event.
		closeBackend()
	}()

	log.Println("Entering event loop...")
	looper.EventLoop()
	return nil
}

// menuOpener returns the menu hotkey callback. At most one menu is open at
// a time. It returns nil when no launcher is available.
func menuOpener(cfg *config.Config, svc *panel.Service, logger *slog.Logger, quit func()) func() {
	launcher, err := palette.NewLauncher(cfg.MenuBackend)
	if err != nil {
		logger.Warn("action menu disabled", "error", err)
		return nil
	}

	path := resolvedConfigPath()
	dispatcher := palette.NewDispatcher(svc, launcher, logger)
	dispatcher.Manual = placement.Point{X: cfg.Placement.ManualX, Y: cfg.Placement.ManualY}
	dispatcher.OnQuit = quit
	dispatcher.OnSave = func(pt placement.Point) error {
		saved := *cfg
		saved.Placement.ManualX = pt.X
		saved.Placement.ManualY = pt.Y
		if err := config.Save(path, &saved); err != nil {
			return err
		}
		logger.Info("manual position saved", "path", path, "x", pt.X, "y", pt.Y)
		return nil
	}

	var open atomic.Bool
	return func() {
		if !open.CompareAndSwap(false, true) {
			return
		}
		defer open.Store(false)
		if err := dispatcher.Open(); err != nil {
			logger.Warn("action menu failed", "error", err)
		}
	}
}

// handleSignals stops the daemon on SIGINT/SIGTERM and re-reads the
// placement preferences on SIGHUP.
func handleSignals(ctx context.Context, cancel context.CancelFunc, svc *panel.Service, logger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			if sig != syscall.SIGHUP {
				cancel()
				return
			}
			logger.Info("received SIGHUP, reloading config")
			newCfg, err := loadConfig()
			if err != nil {
				logger.Error("config reload failed", "error", err)
				continue
			}
			prefs := panel.PreferencesFromConfig(newCfg.Placement)
			svc.SetPreferences(prefs)
			svc.UpdateSpaces(prefs.ShowOnAllSpaces)
			if _, err := svc.PlaceDefault(); err != nil {
				logger.Warn("placement after reload failed", "error", err)
			}
			logger.Info("config reloaded")
		}
	}
}
