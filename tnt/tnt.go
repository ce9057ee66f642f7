// Package tnt reads and writes trees in the parenthetical format of the TNT
// and Hennig86 parsimony programs (the 'tread' command).
//
// TNT trees have no branch lengths and no support values. Siblings are
// separated by white space and trees by '*'. Taxa may be given by name or
// by their number in a preceding xread block.
package tnt

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

// Name makes a taxon or tree name safe for xread and tread blocks, which
// separate names with white space and have no quoting.
func Name(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	return strings.NewReplacer("'", "", ";", "_", "(", "_", ")", "_",
		"*", "_", ",", "_").Replace(name)
}

// WriteTrees writes a single tread command holding every tree of the set.
// The tree names are listed in the command's comment. Branch lengths and
// support values are dropped.
func WriteTrees(w io.Writer, set *treeset.Set) error {
	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}

	names := set.Names()
	for i := range names {
		names[i] = Name(names[i])
	}
	pf("tread '%s'\n", strings.Join(names, " "))
	for i, nt := range set.All() {
		if nt.Tree.IsEmpty() {
			return fmt.Errorf("tree '%s' is empty and cannot be written "+
				"in TNT format", nt.Name)
		}
		if i > 0 {
			pf("*\n")
		}
		pf("%s", format(nt.Tree.Root))
	}
	pf(";\n")
	return err
}

func format(n *newick.Node) string {
	if n.IsLeaf() {
		return Name(n.Name)
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = format(child)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ReadTrees reads the trees of every tread command in the input. Numeric
// leaves are replaced by the taxon of that number (from 0) in the last
// xread block, when there is one.
//
// Trees are named after the words of the tread comment when there is one
// word per tree, as written by WriteTrees. Otherwise they are called tree_1,
// tree_2 and so on.
func ReadTrees(r io.Reader) (*treeset.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	set := &treeset.Set{}
	var taxa []string
	for _, cmd := range commands(string(data)) {
		word, body := command(cmd)
		switch word {
		case "xread":
			taxa = xreadTaxa(body)
		case "tread":
			comment, body := leadingComment(body)
			var trees []*newick.Tree
			for _, text := range strings.Split(body, "*") {
				if len(strings.TrimSpace(text)) == 0 {
					continue
				}
				tree, err := parseTree(text, taxa)
				if err != nil {
					return nil, err
				}
				trees = append(trees, tree)
			}
			names := strings.Fields(comment)
			for i, tree := range trees {
				name := treeset.AnonymousName(set.Len())
				if len(names) == len(trees) {
					name = names[i]
				}
				if err := set.Add(name, tree); err != nil {
					return nil, err
				}
			}
		case "proc", "procedure":
			return set, nil
		}
	}
	return set, nil
}

// commands splits a TNT script at every ';' outside of quotes.
func commands(s string) []string {
	var cmds []string
	quoted, start := false, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				cmds = append(cmds, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); len(rest) > 0 {
		cmds = append(cmds, rest)
	}
	return cmds
}

func command(cmd string) (string, string) {
	cmd = strings.TrimSpace(cmd)
	i := strings.IndexAny(cmd, " \t\r\n'(")
	if i < 0 {
		return strings.ToLower(cmd), ""
	}
	return strings.ToLower(cmd[:i]), cmd[i:]
}

func leadingComment(body string) (string, string) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "'") {
		return "", body
	}
	end := strings.IndexByte(body[1:], '\'')
	if end < 0 {
		return "", body
	}
	return body[1 : end+1], body[end+2:]
}

// xreadTaxa pulls the taxon names out of an xread body: the first word of
// every line after the dimensions.
func xreadTaxa(body string) []string {
	_, body = leadingComment(body)
	var taxa []string
	dims := false
	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !dims {
			dims = true
			continue
		}
		taxa = append(taxa, fields[0])
	}
	return taxa
}

func parseTree(text string, taxa []string) (*newick.Tree, error) {
	tokens := tokenize(text)
	pos := 0
	var parse func() (*newick.Node, error)
	parse = func() (*newick.Node, error) {
		if pos >= len(tokens) {
			return nil, fmt.Errorf("unbalanced parentheses in TNT tree '%s'",
				strings.TrimSpace(text))
		}
		tok := tokens[pos]
		pos++
		switch tok {
		case ")":
			return nil, fmt.Errorf("unexpected ')' in TNT tree '%s'",
				strings.TrimSpace(text))
		case "(":
		default:
			return &newick.Node{Name: leafName(tok, taxa)}, nil
		}
		node := &newick.Node{}
		for {
			if pos >= len(tokens) {
				return nil, fmt.Errorf("unbalanced parentheses in TNT tree '%s'",
					strings.TrimSpace(text))
			}
			if tokens[pos] == ")" {
				pos++
				break
			}
			child, err := parse()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		if len(node.Children) == 0 {
			return nil, fmt.Errorf("empty group in TNT tree '%s'",
				strings.TrimSpace(text))
		}
		return node, nil
	}

	root, err := parse()
	if err != nil {
		return nil, err
	}
	if pos != len(tokens) {
		return nil, fmt.Errorf("trailing input in TNT tree '%s'",
			strings.TrimSpace(text))
	}
	return &newick.Tree{Root: root}, nil
}

func tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case '(', ')':
			flush()
			tokens = append(tokens, string(r))
		case ' ', '\t', '\n', '\r', ',':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// leafName resolves a tread token. Tokens naming a taxon of the xread block
// are taken as names, so numeric taxon names survive; other numbers index
// the xread taxa.
func leafName(tok string, taxa []string) string {
	if slices.Contains(taxa, tok) {
		return tok
	}
	if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < len(taxa) {
		return taxa[i]
	}
	return tok
}
