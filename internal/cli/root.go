// Package cli provides the command-line interface of the supertree toolkit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/internal/cli/commands"
	"github.com/supertree-toolkit/stk/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "stk",
		Short: "stk - Supertree toolkit",
		Long: `stk curates collections of phylogenetic source trees and turns them into
the inputs of supertree analyses.

It reads Newick, NEXUS, TNT and PHYML files, deletes and substitutes taxa,
and writes the trees or their MRP character matrix as Newick, NEXUS, TNT
or Hennig.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if used := config.GetConfigFileUsed(); used != "" {
				logger.Debug("using config file", "path", used)
			}
			cmd.SetContext(config.WithLogger(config.WithConfig(cmd.Context(), cfg), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./stk.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Path to the tree collection (default: "+config.DefaultStorePath+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write the result to this file instead of stdout")

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewTaxaCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewSubstituteCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewMatrixCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewOverlapCommand())
	rootCmd.AddCommand(commands.NewGeneraliseCommand())
	rootCmd.AddCommand(commands.NewStoreCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
