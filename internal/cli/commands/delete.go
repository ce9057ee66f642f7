package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/phyml"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var taxaFlag, taxaFile string
	cmd := &cobra.Command{
		Use:   "delete <file>...",
		Short: "Delete taxa from the source trees",
		Long: `Delete taxa from every source tree.

Parents left with a single child are collapsed. A single PHYML file is
rewritten with only its tree strings changed; anything else is written out
in the configured format.`,
		Example: `  stk delete --taxa "Homo sapiens,Pan" project.phyml -o cleaned.phyml
  stk delete --taxa-file unwanted.txt --format newick a.tre`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taxa := splitList(taxaFlag)
			if taxaFile != "" {
				data, err := os.ReadFile(taxaFile)
				if err != nil {
					return err
				}
				for _, line := range strings.Split(string(data), "\n") {
					taxa = append(taxa, splitList(line)...)
				}
			}
			if len(taxa) == 0 {
				return fmt.Errorf("no taxa to delete: use --taxa or --taxa-file")
			}

			c := NewCommandContext(cmd)
			c.Logger.Debug("deleting taxa", "taxa", taxa)
			return c.Rewrite(args,
				func(t *newick.Tree) *newick.Tree { return newick.DeleteTaxa(taxa, t) },
				func(doc []byte) ([]byte, error) { return phyml.DeleteTaxa(doc, taxa) })
		},
	}
	cmd.Flags().StringVar(&taxaFlag, "taxa", "", "Comma separated taxa to delete")
	cmd.Flags().StringVar(&taxaFile, "taxa-file", "", "File with the taxa to delete, one per line")
	addFormatFlag(cmd)
	return cmd
}
