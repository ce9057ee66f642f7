// Package subs reads taxon substitution files and applies them to trees.
//
// A substitution file has one substitution per line:
//
//	Homo sapiens = Homo_sapiens_sapiens, Homo_neanderthalensis
//	Pan = Pan_troglodytes
//	Gorilla =
//
// The left side is replaced by every name on the right side. An empty right
// side deletes the taxon. Blank lines and anything after a '#' are ignored.
// Spaces inside names are stored as underscores, as in trees.
package subs

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
)

// Substitution replaces the taxon Old by the taxa New. An empty New means
// Old is deleted.
type Substitution struct {
	Old string
	New []string
}

// IsDeletion returns true if the substitution removes the taxon.
func (s Substitution) IsDeletion() bool {
	return len(s.New) == 0
}

func (s Substitution) String() string {
	return fmt.Sprintf("%s = %s", s.Old, strings.Join(s.New, ", "))
}

// Parse reads a substitution file. Errors name the offending line.
func Parse(r io.Reader) ([]Substitution, error) {
	var list []Substitution
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("Error on line %d: expected 'old = new', "+
				"but got '%s'.", lineno, strings.TrimSpace(line))
		}
		old := name(line[:eq])
		if len(old) == 0 {
			return nil, fmt.Errorf("Error on line %d: missing the taxon to "+
				"replace.", lineno)
		}
		sub := Substitution{Old: old}
		for _, field := range strings.Split(line[eq+1:], ",") {
			if n := name(field); len(n) > 0 {
				sub.New = append(sub.New, n)
			}
		}
		list = append(list, sub)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func name(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// Apply runs every substitution against `t`, in order. The tree given is
// not modified.
func Apply(t *newick.Tree, list []Substitution) *newick.Tree {
	t = t.Clone()
	for _, sub := range list {
		t = newick.SubstituteTaxon(sub.Old, sub.New, t)
	}
	return t
}

// Deletions builds the substitutions that delete every taxon in `taxa`.
func Deletions(taxa []string) []Substitution {
	list := make([]Substitution, len(taxa))
	for i, taxon := range taxa {
		list[i] = Substitution{Old: taxon}
	}
	return list
}
