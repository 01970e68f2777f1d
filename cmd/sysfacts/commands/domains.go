package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/domains"
	"github.com/teranos/sysfacts/logger"
)

// DomainsCmd lists the fact domains and optionally their raw values
var DomainsCmd = &cobra.Command{
	Use:   "domains [domain...]",
	Short: "List fact domains and their sub-values",
	Long: `List every data domain and the sub-values its acquisition produces.

With --resolve, each listed domain is acquired once and its raw cached
values are printed before any display formatting.

Examples:
  sysfacts domains                         # Domains and sub-values
  sysfacts domains --resolve swap_memory   # Raw swap values
  sysfacts domains --resolve -f json       # Every domain as JSON`,
	RunE: runDomains,
}

func init() {
	DomainsCmd.Flags().Bool("resolve", false, "Acquire domains and print raw values")
	DomainsCmd.Flags().StringP("format", "f", "", "Output format for --resolve: text, json, yaml, toml")
}

func runDomains(cmd *cobra.Command, args []string) error {
	selected, err := selectDomains(args)
	if err != nil {
		return err
	}

	resolve, _ := cmd.Flags().GetBool("resolve")
	if !resolve {
		data := pterm.TableData{{"DOMAIN", "SUB-VALUES"}}
		for _, d := range selected {
			for i, sub := range d.SubValues() {
				name := ""
				if i == 0 {
					name = d.String()
				}
				data = append(data, []string{name, string(sub)})
			}
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("failed to render domain table: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
		return err
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	reg := newRegistry(cfg)

	tree := make(map[string]any, len(selected))
	for _, d := range selected {
		res, err := reg.Resolver(d)
		if err != nil {
			return err
		}
		snap, err := res.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		values := make(map[string]any, len(snap))
		for sub, v := range snap {
			values[string(sub)] = v
		}
		tree[d.String()] = values
		logger.Debugw("Resolved domain", logger.FieldDomain, d.String(), logger.FieldAcquisitions, res.Acquisitions())
	}

	if cfg.Output.Format == config.FormatText {
		for _, d := range selected {
			fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", pterm.LightCyan(d.String()), textValue(tree[d.String()]))
		}
		return nil
	}
	return renderStructured(cmd.OutOrStdout(), tree, cfg.Output.Format)
}

// selectDomains parses names, defaulting to every domain
func selectDomains(names []string) ([]domains.Domain, error) {
	if len(names) == 0 {
		return domains.All(), nil
	}
	out := make([]domains.Domain, 0, len(names))
	for _, name := range names {
		d, err := domains.Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
