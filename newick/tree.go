package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Node corresponds to a single node of a Newick tree. Children are owned
// exclusively by their parent; there are no pointers back up the tree.
// Use (*Tree).Parent to walk upwards.
type Node struct {
	// All children of this node, in the order they were read. This order
	// is preserved when writing.
	Children []*Node

	// The label of this node. Leaves always have a name. Internal nodes
	// usually do not.
	Name string

	// The branch length between this node and its parent. When the input
	// has no length, Length is 0 and HasLength is false.
	Length    float64
	HasLength bool

	// A support value (bootstrap, posterior, ...) attached to this node.
	Support    float64
	HasSupport bool
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the node and all of its descendents.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = nil
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Leaves returns the names of every leaf under this node, from left to
// right. Duplicates are kept.
func (n *Node) Leaves() []string {
	var names []string
	n.walk(func(m *Node) {
		if m.IsLeaf() {
			names = append(names, m.Name)
		}
	})
	return names
}

// walk visits n and its descendents in pre-order.
func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.walk(visit)
	}
}

// Tree is a rooted Newick tree. A tree with a nil Root is empty.
type Tree struct {
	Root *Node
}

// Clone returns a deep copy of the tree. Mutating the copy never affects
// the original.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return &Tree{}
	}
	return &Tree{Root: t.Root.Clone()}
}

// IsEmpty returns true if the tree has no nodes.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.Root == nil
}

// Walk visits every node of the tree in pre-order.
func (t *Tree) Walk(visit func(*Node)) {
	if t.IsEmpty() {
		return
	}
	t.Root.walk(visit)
}

// Taxa returns the leaf names of the tree in left-to-right order.
func (t *Tree) Taxa() []string {
	if t.IsEmpty() {
		return nil
	}
	return t.Root.Leaves()
}

// PrettyTaxa is like Taxa, except underscores are replaced with spaces.
// This is for display only; trees always store the underscored form.
func (t *Tree) PrettyTaxa() []string {
	taxa := t.Taxa()
	for i := range taxa {
		taxa[i] = Pretty(taxa[i])
	}
	return taxa
}

// Pretty converts a stored taxon name to its human readable form.
func Pretty(name string) string {
	return strings.Replace(name, "_", " ", -1)
}

// Find returns every leaf with the given name.
func (t *Tree) Find(name string) []*Node {
	var found []*Node
	t.Walk(func(n *Node) {
		if n.IsLeaf() && n.Name == name {
			found = append(found, n)
		}
	})
	return found
}

// HasTaxon returns true if some leaf is named `name`.
func (t *Tree) HasTaxon(name string) bool {
	return len(t.Find(name)) > 0
}

// Parent returns the parent of `n`, or nil if `n` is the root or isn't in
// the tree. The parent is found by searching from the root.
func (t *Tree) Parent(n *Node) *Node {
	if t.IsEmpty() {
		return nil
	}
	var parent *Node
	var search func(*Node) bool
	search = func(cur *Node) bool {
		for _, child := range cur.Children {
			if child == n {
				parent = cur
				return true
			}
			if search(child) {
				return true
			}
		}
		return false
	}
	search(t.Root)
	return parent
}

// Siblings returns every other child of n's parent. The root has no
// siblings.
func (t *Tree) Siblings(n *Node) []*Node {
	parent := t.Parent(n)
	if parent == nil {
		return nil
	}
	sibs := make([]*Node, 0, len(parent.Children)-1)
	for _, child := range parent.Children {
		if child != n {
			sibs = append(sibs, child)
		}
	}
	return sibs
}

// InPolytomy returns true if n sits in an unresolved node, i.e., its
// parent has more than two children.
func (t *Tree) InPolytomy(n *Node) bool {
	return len(t.Siblings(n)) > 1
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth.
func (t *Tree) String() string {
	buf := new(bytes.Buffer)
	pf := func(format string, v ...interface{}) {
		fmt.Fprintf(buf, format, v...)
	}

	var out func(n *Node, depth int)
	out = func(n *Node, depth int) {
		name, length := n.Name, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if n.HasLength {
			length = fmt.Sprintf(" (%f)", n.Length)
		}
		if n.HasSupport {
			length += fmt.Sprintf(" [%f]", n.Support)
		}
		pf("%s%s%s\n", strings.Repeat("  ", depth), name, length)
		for _, child := range n.Children {
			out(child, depth+1)
		}
	}
	if !t.IsEmpty() {
		out(t.Root, 0)
	}
	return buf.String()
}
