package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1broseidon/floatpane/internal/interaction"
	"github.com/1broseidon/floatpane/internal/panel"
	"github.com/1broseidon/floatpane/internal/placement"
	"github.com/1broseidon/floatpane/internal/probe"
)

func newMonitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			rows := [][]string{}
			for _, m := range s.service.Monitors() {
				primary := ""
				if m.Primary {
					primary = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(m.Index),
					m.Name,
					fmt.Sprintf("%.0f,%.0f", m.X, m.Y),
					fmt.Sprintf("%.0fx%.0f", m.Width, m.Height),
					primary,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"INDEX", "NAME", "ORIGIN", "SIZE", "PRIMARY"}, rows)
		},
	}
}

func newPositionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List the grid slots on the main panel's monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			slots, mon, err := s.service.Positions(s.cfg.Placement.Grid())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(slots))
			for _, slot := range slots {
				marker := ""
				if slot.Index == s.cfg.Placement.GridPosition {
					marker = "*"
				}
				rows = append(rows, []string{
					strconv.Itoa(slot.Index) + marker,
					strconv.Itoa(slot.Row),
					strconv.Itoa(slot.Col),
					fmt.Sprintf("%.0f", slot.Point.X),
					fmt.Sprintf("%.0f", slot.Point.Y),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "monitor %d (%s) %.0fx%.0f\n", mon.Index, mon.Name, mon.Width, mon.Height)
			return writeTable(cmd.OutOrStdout(), []string{"SLOT", "ROW", "COL", "X", "Y"}, rows)
		},
	}
}

func newScreenInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screen-info",
		Short: "Show the current monitor size and effective grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			info := s.service.ScreenInfo(s.cfg.Placement.Grid())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "width:  %.0f\n", info.Width)
			fmt.Fprintf(out, "height: %.0f\n", info.Height)
			fmt.Fprintf(out, "grid:   %dx%d\n", info.Cols, info.Rows)
			return nil
		},
	}
}

func newPlaceCmd() *cobra.Command {
	var (
		mode    string
		slot    int
		monitor string
		x, y    float64
	)
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place the main panel once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			prefs := s.service.Preferences()
			req := prefs.Request
			g := prefs.Grid
			if cmd.Flags().Changed("slot") {
				g.Position = slot
				req.Mode = g
			}
			switch mode {
			case "":
			case "grid":
				req.Mode = g
			case "random":
				req.Mode = placement.Random{}
			case "manual":
				req.Mode = placement.Manual{X: x, Y: y}
			default:
				return fmt.Errorf("unknown mode %q (expected: grid, random, manual)", mode)
			}
			if monitor != "" {
				req.PreferredMonitor = monitor
			}

			pt, err := s.service.PlaceMain(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed %s at (%.0f, %.0f)\n", req.Mode, pt.X, pt.Y)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "grid, random or manual (default: config)")
	cmd.Flags().IntVar(&slot, "slot", 0, "grid slot index")
	cmd.Flags().StringVar(&monitor, "monitor", "", "auto, primary, current or a monitor index")
	cmd.Flags().Float64Var(&x, "x", 100, "manual x")
	cmd.Flags().Float64Var(&y, "y", 100, "manual y")
	return cmd
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the settings panel next to the main panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			d, ok := s.service.ShowSettings()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "settings centred (no monitors available)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "settings placed %s at (%.0f, %.0f) on monitor %d\n", d.Rule, d.Point.X, d.Point.Y, d.Monitor.Index)
			return nil
		},
	}
}

func newClickThroughCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "click-through on|off|toggle",
		Short:     "Set the main panel's click-through mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			var state interaction.State
			switch args[0] {
			case "toggle":
				// A one-shot run starts from the configured initial state.
				state = s.service.ToggleInteraction()
			default:
				parsed, err := interaction.ParseState(args[0])
				if err != nil {
					return err
				}
				s.service.SetInteraction(parsed == interaction.ClickThrough)
				state = parsed
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func newProbeCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the local service endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			checker := probe.Checker{URL: cfg.Probe.URL, Timeout: cfg.Probe.Timeout()}
			if url != "" {
				checker.URL = url
			}
			msg, err := checker.Check(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "endpoint (default: config probe.url)")
	return cmd
}

func placeFunc(s *panel.Service) func(panel.Request) error {
	return func(req panel.Request) error {
		_, err := s.PlaceMain(req)
		return err
	}
}
