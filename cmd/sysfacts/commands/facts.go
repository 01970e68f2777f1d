// Package commands implements the sysfacts subcommands
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/domains"
	"github.com/teranos/sysfacts/facts"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/source"
)

// AddFactFlags registers the flags of the fact query command
func AddFactFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text, json, yaml, toml (default from config)")
	cmd.Flags().BoolP("legacy", "l", false, "Include legacy fact names")
}

// RunFacts resolves the facts selected by args and prints them
func RunFacts(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	reg := newRegistry(cfg)
	gatherer := facts.NewGatherer(reg, facts.Catalog(), facts.GatherOptions{
		Workers: cfg.Gather.Workers,
		Legacy:  cfg.Output.ShowLegacy,
		Logger:  logger.ComponentLogger("facts"),
	})

	records, err := gatherer.Gather(cmd.Context(), args...)
	if err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if logger.ShouldOutput(verbosity, logger.OutputAcquisitions) {
		for d, n := range reg.Acquisitions() {
			if n > 0 {
				logger.Debugw("Domain acquired", logger.FieldDomain, d.String(), logger.FieldAcquisitions, n)
			}
		}
	}

	return RenderFacts(cmd.OutOrStdout(), records, cfg.Output.Format, len(args) == 1)
}

// effectiveConfig applies command-line overrides on top of loaded config
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := *loaded

	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Output.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("legacy"); f != nil && f.Changed {
		cfg.Output.ShowLegacy = f.Value.String() == "true"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func newRegistry(cfg *config.Config) *domains.Registry {
	src := source.Local(source.Options{CommandTimeout: cfg.CommandTimeout()})
	opts := domains.OptionsFromConfig(cfg)
	opts.Logger = logger.ComponentLogger("domains")
	return domains.New(src, opts)
}
