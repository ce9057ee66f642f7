// Package commands implements the stk subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supertree-toolkit/stk/internal/cli/config"
	"github.com/supertree-toolkit/stk/matrix"
	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treefile"
	"github.com/supertree-toolkit/stk/treeset"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	cmd    *cobra.Command
}

// NewCommandContext collects the configuration and logger stored in the
// command context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    config.GetConfig(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
		cmd:    cmd,
	}
}

// Format parses the configured output format.
func (c *CommandContext) Format() (treefile.Format, error) {
	return treefile.ParseFormat(c.Cfg.Format)
}

// ExportOptions builds export options from the configuration.
func (c *CommandContext) ExportOptions() treefile.Options {
	return treefile.Options{
		Anonymous: c.Cfg.Anonymous,
		Matrix: matrix.Options{
			Weighted: c.Cfg.Weighted,
			Outgroup: c.Cfg.Outgroup,
		},
	}
}

// LoadTrees imports every tree of every file, in the order given.
func (c *CommandContext) LoadTrees(paths []string) (*treeset.Set, error) {
	set, err := treefile.ImportAll(paths)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded trees", "files", len(paths), "trees", set.Len())
	return set, nil
}

// Write sends command output to the configured output file, or to the
// command's standard output.
func (c *CommandContext) Write(text string) error {
	if c.Cfg.Output == "" {
		_, err := io.WriteString(c.cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(c.Cfg.Output, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	c.Logger.Info("wrote output", "path", c.Cfg.Output)
	return nil
}

// Lines writes one line per string.
func (c *CommandContext) Lines(lines []string) error {
	if len(lines) == 0 {
		return c.Write("")
	}
	return c.Write(strings.Join(lines, "\n") + "\n")
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, strings.Join(strings.Fields(item), "_"))
		}
	}
	return items
}

// Rewrite applies fn to every tree of the files and writes the result in
// the configured format. A single PHYML file is rewritten in place of its
// tree strings instead, with doc, so that the rest of the document survives.
func (c *CommandContext) Rewrite(paths []string, fn func(*newick.Tree) *newick.Tree,
	doc func([]byte) ([]byte, error)) error {
	if len(paths) == 1 {
		data, err := os.ReadFile(paths[0])
		if err != nil {
			return err
		}
		if treefile.DetectKind(paths[0], data) == treefile.KindPHYML {
			out, err := doc(data)
			if err != nil {
				return fmt.Errorf("%s: %w", paths[0], err)
			}
			return c.Write(string(out))
		}
	}

	format, err := c.Format()
	if err != nil {
		return err
	}
	set, err := c.LoadTrees(paths)
	if err != nil {
		return err
	}
	out, err := treefile.Export(set.Map(fn), format, c.ExportOptions())
	if err != nil {
		return err
	}
	return c.Write(out)
}

// addFormatFlag adds --format. Its value is read through the configuration.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "",
		"Output format ("+strings.Join(treefile.FormatNames(), "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return treefile.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// addMatrixFlags adds the flags controlling character matrices.
func addMatrixFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("weighted", false, "Share a weight of 1 among the characters of each source tree")
	cmd.Flags().Bool("outgroup", false, "Add an all-absent "+matrix.OutgroupName+" row")
}
