package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supertree-toolkit/stk/treeset"
)

// OutgroupName is the taxon added by Options.Outgroup.
const OutgroupName = "MRP_Outgroup"

// ErrNoTrees is returned when a matrix is requested for an empty set.
var ErrNoTrees = errors.New("no trees to build a matrix from")

// State is the value of a single cell.
type State byte

const (
	Absent  State = '0'
	Present State = '1'
	Missing State = '?'
)

// Character is a single column of the matrix. It corresponds to one clade
// of one source tree.
type Character struct {
	// Name of the source tree.
	Source string

	// Label is "<source>_<n>", where n counts the characters of the source
	// from 1.
	Label string
}

// Matrix is a taxa by characters table. Cells[i][j] is the state of
// Taxa[i] for Characters[j].
type Matrix struct {
	Taxa       []string
	Characters []Character
	Cells      [][]State

	// Weights[j] is the weight of Characters[j]. Without down-weighting,
	// every weight is 1.
	Weights []float64
}

// Options controls how a matrix is built.
type Options struct {
	// Weighted gives every source tree a total weight of 1, shared equally
	// among its characters. Data-rich sources are thereby down-weighted.
	Weighted bool

	// Outgroup appends an all-zero MRP_Outgroup taxon, which is the usual
	// root for MRP analyses.
	Outgroup bool
}

// Build assembles the matrix for every tree in `set`.
//
// Rows are the taxa of the set in first-seen order. Columns follow the set
// order, and within a tree, the pre-order of its clades.
func Build(set *treeset.Set, opts Options) (*Matrix, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrNoTrees
	}
	taxa := set.Taxa()
	row := make(map[string]int, len(taxa))
	for i, taxon := range taxa {
		row[taxon] = i
	}
	if opts.Outgroup {
		if _, ok := row[OutgroupName]; ok {
			return nil, fmt.Errorf("taxon '%s' clashes with the MRP outgroup",
				OutgroupName)
		}
	}

	m := &Matrix{Taxa: taxa}
	var columns [][]State
	for _, nt := range set.All() {
		clades := nt.Tree.Clades()
		weight := 1.0
		if opts.Weighted && len(clades) > 0 {
			weight = 1 / float64(len(clades))
		}

		col := make([]State, len(taxa))
		for i := range col {
			col[i] = Missing
		}
		for _, taxon := range nt.Tree.Taxa() {
			col[row[taxon]] = Absent
		}
		for k, clade := range clades {
			states := append([]State(nil), col...)
			for _, taxon := range clade {
				states[row[taxon]] = Present
			}
			columns = append(columns, states)
			m.Characters = append(m.Characters, Character{
				Source: nt.Name,
				Label:  fmt.Sprintf("%s_%d", nt.Name, k+1),
			})
			m.Weights = append(m.Weights, weight)
		}
	}

	m.Cells = make([][]State, len(taxa))
	for i := range taxa {
		m.Cells[i] = make([]State, len(columns))
		for j := range columns {
			m.Cells[i][j] = columns[j][i]
		}
	}
	if opts.Outgroup {
		m.Taxa = append(m.Taxa, OutgroupName)
		out := make([]State, len(columns))
		for j := range out {
			out[j] = Absent
		}
		m.Cells = append(m.Cells, out)
	}
	return m, nil
}

// NTaxa returns the number of rows.
func (m *Matrix) NTaxa() int {
	return len(m.Taxa)
}

// NChar returns the number of characters.
func (m *Matrix) NChar() int {
	return len(m.Characters)
}

// Row returns the states of a single taxon.
func (m *Matrix) Row(taxon string) ([]State, bool) {
	for i, t := range m.Taxa {
		if t == taxon {
			return m.Cells[i], true
		}
	}
	return nil, false
}

// RowString returns the states of the i'th taxon as a string.
func (m *Matrix) RowString(i int) string {
	b := make([]byte, len(m.Cells[i]))
	for j, s := range m.Cells[i] {
		b[j] = byte(s)
	}
	return string(b)
}

// Weighted returns true if some character has a weight other than 1.
func (m *Matrix) Weighted() bool {
	for _, w := range m.Weights {
		if w != 1 {
			return true
		}
	}
	return false
}

// String returns the matrix as "taxon row" lines.
func (m *Matrix) String() string {
	var b strings.Builder
	for i, taxon := range m.Taxa {
		fmt.Fprintf(&b, "%s %s\n", taxon, m.RowString(i))
	}
	return b.String()
}
