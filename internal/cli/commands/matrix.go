package commands

import (
	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/matrix"
	"github.com/supertree-toolkit/stk/treefile"
)

// NewMatrixCommand creates the matrix command.
func NewMatrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix <file>...",
		Short: "Build the MRP matrix of the source trees",
		Long: `Build the matrix representation with parsimony (MRP) character matrix
of every source tree: one binary character per clade, with '?' for taxa
missing from a tree. The matrix is written as nexus, tnt or hennig.`,
		Example: `  stk matrix --format tnt --weighted project.phyml -o mrp.tnt
  stk matrix --outgroup a.tre b.nex`,
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
			m, err := matrix.Build(set, c.ExportOptions().Matrix)
			if err != nil {
				return err
			}
			out, err := treefile.ExportMatrix(m, format)
			if err != nil {
				return err
			}
			c.Logger.Debug("built matrix", "taxa", m.NTaxa(), "characters", m.NChar())
			return c.Write(out)
		},
	}
	addFormatFlag(cmd)
	addMatrixFlags(cmd)
	return cmd
}
