package commands

import (
	"bytes"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/store"
	"github.com/supertree-toolkit/stk/treefile"
)

// NewStoreCommand creates the store command and its subcommands.
func NewStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the tree collection",
		Long: `Keep source trees from many files in a single collection, a SQLite
database at --store (default ` + "`.stk/collection.db`" + `), and export them
together.`,
	}
	cmd.AddCommand(newStoreAddCommand())
	cmd.AddCommand(newStoreListCommand())
	cmd.AddCommand(newStoreExportCommand())
	cmd.AddCommand(newStoreRemoveCommand())
	return cmd
}

func openStore(c *CommandContext) (*store.Store, error) {
	s, err := store.Open(c.Cfg.StorePath, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree collection: %w", err)
	}
	return s, nil
}

func newStoreAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Add the trees of the files to the collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			total := 0
			for _, path := range args {
				set, err := treefile.ImportTrees(path)
				if err != nil {
					return err
				}
				if err := s.PutSet(cmd.Context(), set, path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				total += set.Len()
			}
			n, err := s.Count(cmd.Context())
			if err != nil {
				return err
			}
			return c.Write(fmt.Sprintf("Added %d trees (%d in collection).\n", total, n))
		},
	}
}

func newStoreListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the trees of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				return c.Write("(0 trees)\n")
			}

			buf := new(bytes.Buffer)
			t := table.NewWriter()
			t.SetOutputMirror(buf)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Taxa", "Origin", "Added"})
			for _, rec := range recs {
				taxa := "?"
				if tree, err := rec.Tree(); err == nil {
					taxa = fmt.Sprint(len(tree.Taxa()))
				}
				t.AppendRow(table.Row{rec.Name, taxa, rec.Origin,
					rec.CreatedAt.Format("2006-01-02 15:04")})
			}
			t.Render()
			fmt.Fprintf(buf, "(%d trees)\n", len(recs))
			return c.Write(buf.String())
		},
	}
}

func newStoreExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every tree of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			format, err := c.Format()
			if err != nil {
				return err
			}
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			set, err := s.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := treefile.Export(set, format, c.ExportOptions())
			if err != nil {
				return err
			}
			return c.Write(out)
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().Bool("anonymous", false, "Name the trees tree_1 .. tree_n")
	addMatrixFlags(cmd)
	return cmd
}

func newStoreRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>...",
		Short: "Remove trees from the collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			s, err := openStore(c)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, name := range args {
				if err := s.Delete(cmd.Context(), name); err != nil {
					return err
				}
			}
			return c.Write(fmt.Sprintf("Removed %d trees.\n", len(args)))
		},
	}
}
