package newick

import (
	"fmt"
	"strings"
)

// Unique returns `names` without duplicates, in first-seen order.
func Unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			uniq = append(uniq, name)
		}
	}
	return uniq
}

// Uniquify returns a copy of `t` where every occurrence of a duplicated
// leaf name gets an "_N" suffix, numbered from 1 in left-to-right order.
// Suffixes that would clash with another taxon in the tree are skipped.
// Leaves with unique names are untouched.
//
// Use StripSuffix to recover the original label.
func Uniquify(t *Tree) *Tree {
	c := t.Clone()
	counts := make(map[string]int)
	taken := make(map[string]bool)
	for _, name := range c.Taxa() {
		counts[name]++
		taken[name] = true
	}

	next := make(map[string]int)
	c.Walk(func(n *Node) {
		if !n.IsLeaf() || counts[n.Name] < 2 {
			return
		}
		var label string
		for {
			next[n.Name]++
			label = fmt.Sprintf("%s_%d", n.Name, next[n.Name])
			if !taken[label] {
				break
			}
		}
		taken[label] = true
		n.Name = label
	})
	return c
}

// StripSuffix removes a trailing "_N" (where N is a positive integer) from
// a name. Names without such a suffix are returned unchanged.
func StripSuffix(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return name
	}
	for _, r := range name[i+1:] {
		if !isDigit(r) {
			return name
		}
	}
	return name[:i]
}
