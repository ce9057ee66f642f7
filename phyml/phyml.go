// Package phyml reads and rewrites the source trees stored in PHYML
// documents, the XML format used to curate supertree source data.
//
// Only the tree strings are interpreted, found at
//
//	source/source_tree/tree/tree_string/string_value
//
// When trees are rewritten, every other byte of the document is kept as is.
package phyml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/subs"
	"github.com/supertree-toolkit/stk/treeset"
)

// Quotes are left alone so that quoted labels stay readable.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var treePath = []string{"source_tree", "tree", "tree_string", "string_value"}

// treeString is one tree string of a document.
type treeString struct {
	name       string
	text       string
	start, end int
}

// scan finds every tree string of the document in order.
func scan(doc []byte) ([]treeString, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var (
		found      []treeString
		stack      []string
		source     string
		sourceTree string
		perSource  int
		cur        *treeString
		text       strings.Builder
	)
	for {
		offset := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("invalid PHYML document: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			stack = append(stack, tok.Name.Local)
			switch tok.Name.Local {
			case "source":
				source, perSource = attr(tok, "name"), 0
			case "source_tree":
				sourceTree = attr(tok, "name")
			case "string_value":
				if inTree(stack) {
					cur = &treeString{start: int(dec.InputOffset())}
					text.Reset()
				}
			}
		case xml.CharData:
			if cur != nil {
				text.Write(tok)
			}
		case xml.EndElement:
			if cur != nil && tok.Name.Local == "string_value" {
				perSource++
				cur.end = offset
				cur.text = strings.TrimSpace(text.String())
				cur.name = sourceTree
				if len(cur.name) == 0 && len(source) > 0 {
					cur.name = fmt.Sprintf("%s_%d", source, perSource)
				}
				found = append(found, *cur)
				cur = nil
			}
			if tok.Name.Local == "source_tree" {
				sourceTree = ""
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return found, nil
}

func inTree(stack []string) bool {
	if len(stack) < len(treePath) {
		return false
	}
	tail := stack[len(stack)-len(treePath):]
	for i := range treePath {
		if tail[i] != treePath[i] {
			return false
		}
	}
	return true
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// ReadTrees returns every source tree of the document. Trees are named
// after their source_tree, or after their source with a running number
// (Hill_2011_1, Hill_2011_2, ...) when the source_tree has no name.
func ReadTrees(doc []byte) (*treeset.Set, error) {
	strs, err := scan(doc)
	if err != nil {
		return nil, err
	}
	set := &treeset.Set{}
	for _, ts := range strs {
		tree, err := newick.Parse(ts.text)
		if err != nil {
			return nil, fmt.Errorf("tree '%s': %w", ts.name, err)
		}
		name := ts.name
		if len(name) == 0 {
			name = treeset.AnonymousName(set.Len())
		}
		if err := set.Add(name, tree); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// AllTaxa returns the sorted union of the taxa of every tree in the
// document. With `pretty`, underscores are shown as spaces.
func AllTaxa(doc []byte, pretty bool) ([]string, error) {
	set, err := ReadTrees(doc)
	if err != nil {
		return nil, err
	}
	taxa := set.Taxa()
	if pretty {
		for i := range taxa {
			taxa[i] = newick.Pretty(taxa[i])
		}
	}
	sort.Strings(taxa)
	return taxa, nil
}

// RewriteTrees replaces every tree string of the document by fn(tree). The
// rest of the document is copied byte for byte.
func RewriteTrees(doc []byte, fn func(*newick.Tree) *newick.Tree) ([]byte, error) {
	strs, err := scan(doc)
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	last := 0
	for _, ts := range strs {
		tree, err := newick.Parse(ts.text)
		if err != nil {
			return nil, fmt.Errorf("tree '%s': %w", ts.name, err)
		}
		out.Write(doc[last:ts.start])
		text := strings.TrimSuffix(newick.Format(fn(tree)), "\n")
		textEscaper.WriteString(out, text)
		last = ts.end
	}
	out.Write(doc[last:])
	return out.Bytes(), nil
}

// SubstituteTaxa applies a list of substitutions to every tree of the
// document.
func SubstituteTaxa(doc []byte, list []subs.Substitution) ([]byte, error) {
	return RewriteTrees(doc, func(t *newick.Tree) *newick.Tree {
		return subs.Apply(t, list)
	})
}

// DeleteTaxa removes the given taxa from every tree of the document.
func DeleteTaxa(doc []byte, taxa []string) ([]byte, error) {
	return RewriteTrees(doc, func(t *newick.Tree) *newick.Tree {
		return newick.DeleteTaxa(taxa, t)
	})
}
