package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/config"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/logview"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/ui"
)

type logsOpts struct {
	dir      string
	filter   string
	interval time.Duration
	once     bool
}

func newLogsCmd(root *rootOpts) *cobra.Command {
	opts := &logsOpts{}
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Follow the brainstormer log files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ConfigLoad(root.cfgFile); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg := config.ConfigGet()
			root.apply(cfg)
			dir := opts.dir
			if dir == "" {
				dir = cfg.LogFolder
			}

			out := cmd.OutOrStdout()
			v := logview.NewViewer(dir, opts.filter, out, ui.ColorEnabled(out, cfg.ColorMode))
			if opts.once {
				return v.Poll()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return v.Follow(ctx, opts.interval)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "log directory (default from config)")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "only show entries containing this text")
	cmd.Flags().DurationVar(&opts.interval, "interval", time.Second, "polling interval")
	cmd.Flags().BoolVar(&opts.once, "once", false, "print the current entries and exit")
	return cmd
}
