package treeset

import "github.com/supertree-toolkit/stk/newick"

// Overlap groups the trees of the set into connected components. Two trees
// are connected when they share at least `minShared` taxa, directly or
// through a chain of other trees. A supertree can only be built from a set
// that forms a single component.
//
// Components are listed in the order of their first tree, and tree names
// within a component keep the set order.
func (s *Set) Overlap(minShared int) [][]string {
	n := len(s.entries)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	taxa := make([]map[string]bool, n)
	for i, nt := range s.entries {
		taxa[i] = make(map[string]bool)
		for _, taxon := range newick.Unique(nt.Tree.Taxa()) {
			taxa[i][taxon] = true
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if shared(taxa[i], taxa[j]) >= minShared {
				if a, b := find(i), find(j); a != b {
					parent[b] = a
				}
			}
		}
	}

	var components [][]string
	slot := make(map[int]int)
	for i, nt := range s.entries {
		root := find(i)
		k, ok := slot[root]
		if !ok {
			k = len(components)
			slot[root] = k
			components = append(components, nil)
		}
		components[k] = append(components[k], nt.Name)
	}
	return components
}

func shared(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for taxon := range a {
		if b[taxon] {
			n++
		}
	}
	return n
}
