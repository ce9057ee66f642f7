package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewOverlapCommand creates the overlap command.
func NewOverlapCommand() *cobra.Command {
	var minShared int
	cmd := &cobra.Command{
		Use:   "overlap <file>...",
		Short: "Check that the source trees overlap enough",
		Long: `Group the source trees that are connected by sharing at least --min taxa,
directly or through other trees. A supertree can only be built when every
tree ends up in a single group.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if minShared < 1 {
				return fmt.Errorf("--min must be at least 1")
			}
			c := NewCommandContext(cmd)
			set, err := c.LoadTrees(args)
			if err != nil {
				return err
			}
			groups := set.Overlap(minShared)

			var b strings.Builder
			if len(groups) <= 1 {
				fmt.Fprintf(&b, "All %d trees overlap by at least %d taxa.\n",
					set.Len(), minShared)
			} else {
				fmt.Fprintf(&b, "The trees form %d disconnected groups:\n", len(groups))
				for i, group := range groups {
					fmt.Fprintf(&b, "  %d: %s\n", i+1, strings.Join(group, ", "))
				}
			}
			return c.Write(b.String())
		},
	}
	cmd.Flags().IntVar(&minShared, "min", 2, "Minimum number of shared taxa")
	return cmd
}
