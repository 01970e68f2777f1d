package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/sysfacts/cmd/sysfacts/commands"
	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sysfacts [query...]",
	Short: "sysfacts - machine facts for Linux, FreeBSD, macOS and Windows",
	Long: `sysfacts - machine facts for Linux, FreeBSD, macOS and Windows.

Resolves hardware, memory, operating system and host facts and prints them
under stable dotted names. Each data domain is acquired once per run, however
many facts read from it.

Queries select facts by exact name or dotted prefix. Without queries every
fact that applies to this platform is printed.

Examples:
  sysfacts                          # All facts as text
  sysfacts memory.swap              # Swap facts only
  sysfacts swapsize -f json         # A legacy name, as JSON
  sysfacts --legacy -f yaml         # Everything including legacy aliases
  sysfacts domains --resolve        # Raw resolver values per domain
  sysfacts config where             # Which config files were read`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		cfg, err := config.Load()
		if err != nil {
			// Still log the failure in the default style
			_ = logger.Initialize(false, verbosity)
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.SetTheme(cfg.Log.Theme)
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if logger.ShouldOutput(verbosity, logger.OutputConfig) {
			for _, src := range config.Sources() {
				if src.Loaded {
					logger.Infow("Loaded config", logger.FieldSource, string(src.Kind), logger.FieldPath, src.Path)
				}
			}
		}
		return nil
	},
	RunE: commands.RunFacts,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	commands.AddFactFlags(rootCmd)

	rootCmd.AddCommand(commands.DomainsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
