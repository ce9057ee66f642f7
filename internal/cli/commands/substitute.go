package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/phyml"
	"github.com/supertree-toolkit/stk/subs"
)

// NewSubstituteCommand creates the substitute command.
func NewSubstituteCommand() *cobra.Command {
	var subsFile, oldTaxon, newTaxa string
	cmd := &cobra.Command{
		Use:     "substitute <file>...",
		Aliases: []string{"sub"},
		Short:   "Replace taxa in the source trees",
		Long: `Replace taxa in every source tree.

A taxon replaced by several taxa becomes a polytomy of them. A taxon
replaced by nothing is deleted. Substitutions are read from a file of
"old = new1, new2" lines, or given with --old and --new.`,
		Example: `  stk substitute --subs synonyms.txt project.phyml -o fixed.phyml
  stk substitute --old Pan --new Pan_troglodytes,Pan_paniscus a.tre`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []subs.Substitution
			if subsFile != "" {
				f, err := os.Open(subsFile)
				if err != nil {
					return err
				}
				list, err = subs.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", subsFile, err)
				}
			}
			if old := splitList(oldTaxon); len(old) == 1 {
				list = append(list, subs.Substitution{Old: old[0], New: splitList(newTaxa)})
			} else if len(old) > 1 {
				return fmt.Errorf("--old takes a single taxon")
			}
			if len(list) == 0 {
				return fmt.Errorf("no substitutions: use --subs or --old and --new")
			}

			c := NewCommandContext(cmd)
			c.Logger.Debug("substituting taxa", "substitutions", len(list))
			return c.Rewrite(args,
				func(t *newick.Tree) *newick.Tree { return subs.Apply(t, list) },
				func(doc []byte) ([]byte, error) { return phyml.SubstituteTaxa(doc, list) })
		},
	}
	cmd.Flags().StringVar(&subsFile, "subs", "", "Substitution file")
	cmd.Flags().StringVar(&oldTaxon, "old", "", "Taxon to replace")
	cmd.Flags().StringVar(&newTaxa, "new", "", "Comma separated replacement taxa (empty deletes)")
	addFormatFlag(cmd)
	return cmd
}
