package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/config"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

type rootOpts struct {
	cfgFile   string
	dbPath    string
	graph     string
	colorMode string
	debug     bool
}

var supportedColorModes = []string{config.ColorAuto, config.ColorAlways, config.ColorNever}

var longRootCmdDescription = `brainstormer is a terminal client for threaded brainstorm graphs.
Posts reply to one parent and may annotate another post; the page shows
the graph around a focus post, weighted by votes, and lets you move
through it, post, vote and re-root.

Script files given as arguments are run before the interactive prompt.`

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	cmd := &cobra.Command{
		Use:           "brainstormer [script...]",
		Short:         "Explore and grow brainstorm graphs from the terminal",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.colorMode == "" {
				return nil
			}
			for _, m := range supportedColorModes {
				if m == strings.ToLower(opts.colorMode) {
					return nil
				}
			}
			return fmt.Errorf("unsupported color mode %q, the possible values are %v", opts.colorMode, supportedColorModes)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap(opts, args)
		},
	}

	cmd.AddCommand(newLogsCmd(opts))

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file of the brainstormer")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "database file, overriding the configured one")
	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "stored graph to open at start")
	cmd.PersistentFlags().StringVar(&opts.colorMode, "color", "", fmt.Sprintf("color mode, one of %v (default from config)", supportedColorModes))
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "turn on debug logging")
	return cmd
}

// apply overrides the loaded configuration with the command line flags.
// The overrides are not written back to the config file.
func (o *rootOpts) apply(cfg *model.Config) {
	if o.dbPath != "" {
		cfg.DatabaseDir = filepath.Dir(o.dbPath)
		cfg.DatabaseFile = filepath.Base(o.dbPath)
	}
	if o.colorMode != "" {
		cfg.ColorMode = strings.ToLower(o.colorMode)
	}
}
