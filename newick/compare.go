package newick

import (
	"sort"
	"strings"
)

// Clades returns the leaf names under every informative clade of the tree,
// in pre-order. A clade is informative when it is not the root and holds
// at least two, but not all, of the tree's distinct taxa. Leaf names
// within a clade are distinct and in left-to-right order.
func (t *Tree) Clades() [][]string {
	if t.IsEmpty() {
		return nil
	}
	total := len(Unique(t.Taxa()))
	var clades [][]string
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, child := range n.Children {
			if child.IsLeaf() {
				continue
			}
			leaves := Unique(child.Leaves())
			if len(leaves) >= 2 && len(leaves) < total {
				clades = append(clades, leaves)
			}
			visit(child)
		}
	}
	visit(t.Root)
	return clades
}

// Equal returns true when both trees have the same taxon set and the same
// informative clades. Child order, branch lengths, support values and
// internal names are ignored.
func Equal(a, b *Tree) bool {
	if !sameStrings(Unique(a.Taxa()), Unique(b.Taxa())) {
		return false
	}
	return sameStrings(cladeKeys(a), cladeKeys(b))
}

func cladeKeys(t *Tree) []string {
	var keys []string
	for _, clade := range t.Clades() {
		sort.Strings(clade)
		keys = append(keys, strings.Join(clade, "\x00"))
	}
	return Unique(keys)
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
