// Package taxonomy replaces taxa by their names at a higher taxonomic rank.
package taxonomy

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/supertree-toolkit/stk/newick"
)

// Ranks lists the standard ranks from the most to the least inclusive.
var Ranks = []string{
	"kingdom", "phylum", "class", "order", "superfamily", "family",
	"subfamily", "tribe", "genus", "species",
}

// Lookup gives the names of a taxon at each rank it is classified at.
type Lookup interface {
	Ranks(taxon string) (map[string]string, bool)
}

// Map is a Lookup held in memory. It is keyed by taxon, then by rank.
type Map map[string]map[string]string

// Ranks implements Lookup.
func (m Map) Ranks(taxon string) (map[string]string, bool) {
	ranks, ok := m[taxon]
	return ranks, ok
}

// Load reads a taxonomy from YAML of the form
//
//	Homo_sapiens:
//	  genus: Homo
//	  family: Hominidae
//
// Spaces in names are stored as underscores and rank names are lower cased.
func Load(r io.Reader) (Map, error) {
	var raw map[string]map[string]string
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	m := make(Map, len(raw))
	for taxon, ranks := range raw {
		clean := make(map[string]string, len(ranks))
		for rank, name := range ranks {
			clean[strings.ToLower(strings.TrimSpace(rank))] = underscore(name)
		}
		m[underscore(taxon)] = clean
	}
	return m, nil
}

func underscore(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// ValidRank returns an error for a rank that is not in Ranks.
func ValidRank(rank string) error {
	for _, r := range Ranks {
		if r == rank {
			return nil
		}
	}
	return fmt.Errorf("unknown rank '%s' (expected one of %s)",
		rank, strings.Join(Ranks, ", "))
}

// Generalise replaces every taxon of `t` by its name at `rank`, then
// collapses the sister duplicates this creates. Taxa the lookup knows
// nothing about are kept as they are.
func Generalise(t *newick.Tree, lookup Lookup, rank string) *newick.Tree {
	out := t.Clone()
	for _, taxon := range newick.Unique(t.Taxa()) {
		ranks, ok := lookup.Ranks(taxon)
		if !ok {
			continue
		}
		if name, ok := ranks[rank]; ok && len(name) > 0 && name != taxon {
			out = newick.SubstituteTaxon(taxon, []string{name}, out)
		}
	}
	return newick.CollapseSisterDuplicates(out)
}

// Unresolved returns the taxa of `t` that have no name at `rank`.
func Unresolved(t *newick.Tree, lookup Lookup, rank string) []string {
	var missing []string
	for _, taxon := range newick.Unique(t.Taxa()) {
		ranks, ok := lookup.Ranks(taxon)
		if !ok || len(ranks[rank]) == 0 {
			missing = append(missing, taxon)
		}
	}
	return missing
}
