package commands

import (
	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/treefile"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>...",
		Short: "Export the source trees to another format",
		Long: `Export every source tree of the given files in one of the formats
newick, nexus, tnt or hennig.

TNT output holds the MRP matrix of the trees followed by the trees
themselves. Hennig output holds the matrix only.`,
		Example: `  stk export --format nexus project.phyml -o trees.nex
  stk export --format tnt --anonymous a.tre b.tre`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			format, err := c.Format()
			if err != nil {
				return err
			}
			set, err := c.LoadTrees(args)
			if err != nil {
				return err
			}
			out, err := treefile.Export(set, format, c.ExportOptions())
			if err != nil {
				return err
			}
			c.Logger.Debug("exported trees", "format", format, "trees", set.Len())
			return c.Write(out)
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().Bool("anonymous", false, "Name the trees tree_1 .. tree_n")
	addMatrixFlags(cmd)
	return cmd
}
