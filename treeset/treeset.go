// Package treeset provides an ordered collection of named source trees.
//
// Iteration order is insertion order. Everything downstream (matrix rows
// and columns, exported tree order, anonymous names) depends on it.
package treeset

import (
	"fmt"
	"sort"

	"github.com/supertree-toolkit/stk/newick"
)

// Named pairs a source tree with its name.
type Named struct {
	Name string
	Tree *newick.Tree
}

// Set is an ordered mapping from tree name to tree. The zero value is an
// empty set ready to use.
type Set struct {
	entries []Named
	index   map[string]int
}

// New returns a set holding `trees` in the order given. It fails on
// duplicate names.
func New(trees ...Named) (*Set, error) {
	s := &Set{}
	for _, nt := range trees {
		if err := s.Add(nt.Name, nt.Tree); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a tree. Names must be unique within a set.
func (s *Set) Add(name string, t *newick.Tree) error {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("tree '%s' is already in the set", name)
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Named{name, t})
	return nil
}

// Len returns the number of trees in the set.
func (s *Set) Len() int {
	return len(s.entries)
}

// Get returns the tree with the given name.
func (s *Set) Get(name string) (*newick.Tree, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].Tree, true
}

// All returns the named trees in order. The slice is a copy; the trees are
// not.
func (s *Set) All() []Named {
	return append([]Named(nil), s.entries...)
}

// Names returns the tree names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.entries))
	for i, nt := range s.entries {
		names[i] = nt.Name
	}
	return names
}

// Trees returns the trees in order.
func (s *Set) Trees() []*newick.Tree {
	trees := make([]*newick.Tree, len(s.entries))
	for i, nt := range s.entries {
		trees[i] = nt.Tree
	}
	return trees
}

// Taxa returns the union of the taxa of every tree, in first-seen order.
func (s *Set) Taxa() []string {
	var all []string
	for _, nt := range s.entries {
		all = append(all, nt.Tree.Taxa()...)
	}
	return newick.Unique(all)
}

// Map returns a new set where every tree has been replaced by fn(tree).
// Names and order are kept.
func (s *Set) Map(fn func(*newick.Tree) *newick.Tree) *Set {
	out := &Set{index: make(map[string]int, len(s.entries))}
	for i, nt := range s.entries {
		out.index[nt.Name] = i
		out.entries = append(out.entries, Named{nt.Name, fn(nt.Tree)})
	}
	return out
}

// Anonymous returns a set with the same trees in the same order, named
// tree_1 to tree_n.
func (s *Set) Anonymous() *Set {
	out := &Set{index: make(map[string]int, len(s.entries))}
	for i, nt := range s.entries {
		name := AnonymousName(i)
		out.index[name] = i
		out.entries = append(out.entries, Named{name, nt.Tree})
	}
	return out
}

// AnonymousName is the generic name given to the i'th tree (from 0).
func AnonymousName(i int) string {
	return fmt.Sprintf("tree_%d", i+1)
}

// Occurrence counts the number of trees each taxon appears in.
type Occurrence struct {
	Taxon string
	Trees int
}

// Occurrences returns, for every taxon of the set, the number of trees it
// is found in. The most common taxa come first; ties are broken by name.
func (s *Set) Occurrences() []Occurrence {
	counts := make(map[string]int)
	for _, nt := range s.entries {
		for _, taxon := range newick.Unique(nt.Tree.Taxa()) {
			counts[taxon]++
		}
	}
	occ := make([]Occurrence, 0, len(counts))
	for taxon, n := range counts {
		occ = append(occ, Occurrence{taxon, n})
	}
	sort.Slice(occ, func(i, j int) bool {
		if occ[i].Trees != occ[j].Trees {
			return occ[i].Trees > occ[j].Trees
		}
		return occ[i].Taxon < occ[j].Taxon
	})
	return occ
}
