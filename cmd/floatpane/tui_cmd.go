package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/floatpane/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive placement settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts := tui.Options{ConfigPath: resolvedConfigPath(), Config: cfg}

			// Without a display the catalog yields the fallback monitor.
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			opts.Monitors = s.service.Monitors()
			opts.Place = placeFunc(s.service)
			return tui.Run(opts)
		},
	}
}
