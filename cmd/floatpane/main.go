// Package main provides the CLI entrypoint for floatpane.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/floatpane/internal/config"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/platform"
)

var (
	configPath  string
	displayName string
)

// openBackend connects to the display server. Tests replace it.
var openBackend = platform.Open

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "floatpane",
		Short:         "Place and manage a floating overlay panel",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/floatpane/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&displayName, "display", "", "X display (default: config display, then $DISPLAY)")

	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newMonitorsCmd())
	rootCmd.AddCommand(newPositionsCmd())
	rootCmd.AddCommand(newScreenInfoCmd())
	rootCmd.AddCommand(newPlaceCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newClickThroughCmd())
	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromPath(resolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if displayName != "" {
		cfg.Display = displayName
	}
	return cfg, nil
}

// newLogger returns a text logger on w at the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// session is a one-shot connection to the panel windows.
type session struct {
	cfg     *config.Config
	service *panel.Service
	logger  *slog.Logger
	close   func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	backend, closeFn, err := openBackend(cfg.Display)
	if err != nil {
		if backend == nil {
			return nil, fmt.Errorf("failed to connect to display: %w", err)
		}
		logger.Warn("display unavailable, using fallback monitor", "error", err)
	}
	svc := panel.New(backend, cfg, logger)
	return &session{
		cfg:     cfg,
		service: svc,
		logger:  logger,
		close: func() {
			svc.Stop()
			closeFn()
		},
	}, nil
}
