package newick

// Every operation in this file works on a deep copy of its input tree. The
// tree given by the caller is never modified, so it may be shared freely.
//
// Operations that name a taxon not present in the tree return an unchanged
// copy. They never fail.

// DeleteTaxon removes every leaf named `name`.
//
// When a removal leaves a parent with a single child, the parent is
// collapsed and that child takes its place. The child keeps its own branch
// length; the parent's length is dropped rather than added to it. A parent
// left with no children at all is removed too, and if the root is left with
// a single child then that child becomes the root.
func DeleteTaxon(name string, t *Tree) *Tree {
	return DeleteTaxa([]string{name}, t)
}

// DeleteTaxa removes every leaf whose name is in `names`. See DeleteTaxon.
func DeleteTaxa(names []string, t *Tree) *Tree {
	doomed := make(map[string]bool, len(names))
	for _, name := range names {
		doomed[name] = true
	}
	c := t.Clone()
	if c.IsEmpty() {
		return c
	}
	c.Root = prune(c.Root, func(n *Node) bool { return doomed[n.Name] })
	return c
}

// prune drops the leaves for which `drop` is true and returns the node
// that should replace `n` in its parent. nil means `n` is gone.
func prune(n *Node, drop func(*Node) bool) *Node {
	if n.IsLeaf() {
		if drop(n) {
			return nil
		}
		return n
	}
	kept := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if r := prune(child, drop); r != nil {
			kept = append(kept, r)
		}
	}
	return collapse(n, kept)
}

// collapse installs `kept` as the children of `n`, eliding `n` if it lost
// children and only one is left.
func collapse(n *Node, kept []*Node) *Node {
	switch {
	case len(kept) == 0:
		return nil
	case len(kept) == 1 && len(n.Children) > 1:
		return kept[0]
	}
	n.Children = kept
	return n
}

// SubstituteTaxon replaces every leaf named `old`.
//
// With a single replacement the leaf is renamed. With several, the leaf
// becomes a polytomy whose children are the replacement names; the new
// clade keeps the old leaf's branch length and support, and each new leaf
// gets the same branch length as the old leaf. With no replacements at all,
// the taxon is deleted.
func SubstituteTaxon(old string, news []string, t *Tree) *Tree {
	if len(news) == 0 {
		return DeleteTaxon(old, t)
	}
	c := t.Clone()
	for _, leaf := range c.Find(old) {
		if len(news) == 1 {
			leaf.Name = news[0]
			continue
		}
		leaf.Children = make([]*Node, len(news))
		for i, name := range news {
			leaf.Children[i] = &Node{
				Name:      name,
				Length:    leaf.Length,
				HasLength: leaf.HasLength,
			}
		}
		leaf.Name = ""
	}
	return c
}

// CollapseSisterDuplicates removes leaves that have the same name as an
// earlier sibling leaf. Parents reduced to a single child are collapsed as
// in DeleteTaxon. Substitutions often create such sister duplicates, e.g.,
// when two species are both replaced by their genus.
func CollapseSisterDuplicates(t *Tree) *Tree {
	c := t.Clone()
	if c.IsEmpty() {
		return c
	}
	c.Root = collapseSisters(c.Root)
	return c
}

func collapseSisters(n *Node) *Node {
	if n.IsLeaf() {
		return n
	}
	seen := make(map[string]bool)
	kept := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		child = collapseSisters(child)
		if child.IsLeaf() {
			if seen[child.Name] {
				continue
			}
			seen[child.Name] = true
		}
		kept = append(kept, child)
	}
	return collapse(n, kept)
}
