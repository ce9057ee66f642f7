package commands

import (
	"bytes"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var occurrences bool
	cmd := &cobra.Command{
		Use:   "summary <file>...",
		Short: "Summarise the source trees",
		Long: `Show, for every source tree, its number of taxa and informative clades,
and whether it contains polytomies. With --occurrences, also count the trees
each taxon appears in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			set, err := c.LoadTrees(args)
			if err != nil {
				return err
			}
			buf := new(bytes.Buffer)
			renderSummary(buf, set)
			if occurrences {
				buf.WriteString("\n")
				renderOccurrences(buf, set.Occurrences())
			}
			return c.Write(buf.String())
		},
	}
	cmd.Flags().BoolVar(&occurrences, "occurrences", false, "Count the trees each taxon is in")
	return cmd
}

func renderSummary(buf *bytes.Buffer, set *treeset.Set) {
	t := table.NewWriter()
	t.SetOutputMirror(buf)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tree", "Taxa", "Clades", "Polytomies"})

	chars := 0
	for _, nt := range set.All() {
		clades := len(nt.Tree.Clades())
		chars += clades
		t.AppendRow(table.Row{nt.Name, len(newick.Unique(nt.Tree.Taxa())),
			clades, yesNo(hasPolytomy(nt.Tree))})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d trees", set.Len()),
		len(set.Taxa()), chars, ""})
	t.Render()
}

func renderOccurrences(buf *bytes.Buffer, occ []treeset.Occurrence) {
	t := table.NewWriter()
	t.SetOutputMirror(buf)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Taxon", "Trees"})
	for _, o := range occ {
		t.AppendRow(table.Row{o.Taxon, o.Trees})
	}
	t.Render()
}

func hasPolytomy(t *newick.Tree) bool {
	found := false
	t.Walk(func(n *newick.Node) {
		if len(n.Children) > 2 {
			found = true
		}
	})
	return found
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
