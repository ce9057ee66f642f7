// Package nexus reads and writes the TREES block of NEXUS files.
//
// Only the TREES block is understood. Every other block is skipped when
// reading. Trees are written with a TRANSLATE table so that taxon names are
// only spelled out once.
package nexus

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

// ReadTrees reads every tree of every TREES block in the input. Leaf labels
// found in a TRANSLATE table are replaced by the full taxon name. Trees
// without a name are called tree_1, tree_2 and so on.
func ReadTrees(r io.Reader) (*treeset.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(strings.ToUpper(text), "#NEXUS") {
		return nil, fmt.Errorf("missing #NEXUS header")
	}
	text = text[len("#NEXUS"):]

	set := &treeset.Set{}
	inTrees := false
	translate := make(map[string]string)
	for _, stmt := range split(text, ';') {
		body := strings.TrimSpace(stripComments(stmt))
		word, rest := firstWord(body)
		switch strings.ToUpper(word) {
		case "BEGIN":
			inTrees = strings.EqualFold(strings.TrimSpace(rest), "TREES")
			translate = make(map[string]string)
			continue
		case "END", "ENDBLOCK":
			inTrees = false
			continue
		}
		if !inTrees {
			continue
		}

		switch strings.ToUpper(word) {
		case "TRANSLATE":
			if err := readTranslate(rest, translate); err != nil {
				return nil, err
			}
		case "TREE", "UTREE":
			name, tree, err := readTree(stmt, translate)
			if err != nil {
				return nil, err
			}
			if len(name) == 0 {
				name = treeset.AnonymousName(set.Len())
			}
			if err := set.Add(name, tree); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func readTranslate(body string, translate map[string]string) error {
	for _, pair := range split(body, ',') {
		pair = strings.TrimSpace(pair)
		if len(pair) == 0 {
			continue
		}
		key, value := firstWord(pair)
		value = strings.TrimSpace(value)
		if len(value) == 0 {
			return fmt.Errorf("TRANSLATE entry '%s' has no taxon name", key)
		}
		translate[key] = unquote(value)
	}
	return nil
}

// readTree parses "TREE [*] name = [&R] (...)". Comments are kept in the
// tree itself, since they may carry support values.
func readTree(stmt string, translate map[string]string) (string, *newick.Tree, error) {
	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return "", nil, fmt.Errorf("TREE statement without '=': %s",
			strings.TrimSpace(stmt))
	}
	_, name := firstWord(strings.TrimSpace(stripComments(stmt[:eq])))
	name = unquote(strings.TrimSpace(strings.TrimPrefix(
		strings.TrimSpace(name), "*")))

	text := strings.TrimSpace(stmt[eq+1:])
	for strings.HasPrefix(text, "[") {
		end := strings.IndexByte(text, ']')
		if end < 0 {
			break
		}
		text = strings.TrimSpace(text[end+1:])
	}
	tree, err := newick.Parse(text + ";")
	if err != nil {
		return "", nil, fmt.Errorf("tree '%s': %w", name, err)
	}
	tree.Walk(func(n *newick.Node) {
		if full, ok := translate[n.Name]; ok && n.IsLeaf() {
			n.Name = full
		}
	})
	return name, tree, nil
}

// WriteTrees writes a complete NEXUS file with a single TREES block. Taxa
// are numbered from 1 in first-seen order.
func WriteTrees(w io.Writer, set *treeset.Set) error {
	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}

	taxa := set.Taxa()
	number := make(map[string]string, len(taxa))
	pf("#NEXUS\n\nBEGIN TREES;\n")
	if len(taxa) > 0 {
		pf("\tTRANSLATE\n")
		for i, taxon := range taxa {
			number[taxon] = strconv.Itoa(i + 1)
			sep := ","
			if i == len(taxa)-1 {
				sep = ""
			}
			pf("\t\t%d %s%s\n", i+1, newick.QuoteName(taxon, false), sep)
		}
		pf("\t;\n")
	}
	for _, nt := range set.All() {
		tree := nt.Tree.Clone()
		tree.Walk(func(n *newick.Node) {
			if n.IsLeaf() {
				n.Name = number[n.Name]
			}
		})
		pf("\tTREE %s = [&R] %s\n", newick.QuoteName(nt.Name, false),
			strings.TrimSuffix(newick.Format(tree), "\n"))
	}
	pf("END;\n")
	return err
}

// split breaks s at every `sep` found outside of quotes and comments.
func split(s string, sep byte) []string {
	var parts []string
	quoted, depth, start := false, 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'' && depth == 0:
			quoted = !quoted
		case quoted:
		case c == '[':
			depth++
		case c == ']' && depth > 0:
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if rest := s[start:]; len(strings.TrimSpace(rest)) > 0 {
		parts = append(parts, rest)
	}
	return parts
}

func stripComments(s string) string {
	var b strings.Builder
	quoted, depth := false, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && depth == 0:
			quoted = !quoted
		case !quoted && c == '[':
			depth++
			continue
		case !quoted && c == ']' && depth > 0:
			depth--
			continue
		}
		if depth == 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func firstWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t\r\n")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.Replace(s[1:len(s)-1], "''", "'", -1)
	}
	return s
}
