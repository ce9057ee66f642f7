package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treefile"
	"github.com/supertree-toolkit/stk/taxonomy"
)

// NewGeneraliseCommand creates the generalise command.
func NewGeneraliseCommand() *cobra.Command {
	var taxonomyFile, rank string
	cmd := &cobra.Command{
		Use:     "generalise <file>...",
		Aliases: []string{"generalize"},
		Short:   "Replace taxa by their names at a higher rank",
		Long: `Replace every taxon by its name at the given rank, using a YAML taxonomy,
then collapse the sister duplicates this creates. Taxa without a name at
that rank are kept and reported.`,
		Example: `  stk generalise --taxonomy taxonomy.yaml --rank genus project.phyml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if taxonomyFile == "" {
				return fmt.Errorf("--taxonomy is required")
			}
			if err := taxonomy.ValidRank(rank); err != nil {
				return err
			}
			f, err := os.Open(taxonomyFile)
			if err != nil {
				return err
			}
			lookup, err := taxonomy.Load(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", taxonomyFile, err)
			}

			c := NewCommandContext(cmd)
			format, err := c.Format()
			if err != nil {
				return err
			}
			set, err := c.LoadTrees(args)
			if err != nil {
				return err
			}
			for _, nt := range set.All() {
				if missing := taxonomy.Unresolved(nt.Tree, lookup, rank); len(missing) > 0 {
					c.Logger.Warn("taxa without a name at rank",
						"tree", nt.Name, "rank", rank, "taxa", missing)
				}
			}
			out, err := treefile.Export(set.Map(func(t *newick.Tree) *newick.Tree {
				return taxonomy.Generalise(t, lookup, rank)
			}), format, c.ExportOptions())
			if err != nil {
				return err
			}
			return c.Write(out)
		},
	}
	cmd.Flags().StringVar(&taxonomyFile, "taxonomy", "", "YAML taxonomy file")
	cmd.Flags().StringVar(&rank, "rank", "genus", "Rank to generalise to")
	addFormatFlag(cmd)
	return cmd
}
