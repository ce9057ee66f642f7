package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/newick"
)

// NewTaxaCommand creates the taxa command.
func NewTaxaCommand() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "taxa <file>...",
		Short: "List every taxon of the source trees",
		Long: `List the sorted union of the taxa found in every tree of the given files.

Files may be Newick, NEXUS, TNT or PHYML; the kind is worked out from the
extension or the contents.`,
		Example: `  # All taxa of a PHYML project
  stk taxa project.phyml

  # With spaces instead of underscores
  stk taxa --pretty a.tre b.nex`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			set, err := c.LoadTrees(args)
			if err != nil {
				return err
			}
			taxa := set.Taxa()
			sort.Strings(taxa)
			if pretty {
				for i := range taxa {
					taxa[i] = newick.Pretty(taxa[i])
				}
			}
			return c.Lines(taxa)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Show underscores as spaces")
	return cmd
}
