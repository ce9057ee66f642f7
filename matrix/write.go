package matrix

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/tnt"
)

// Flavor selects the dialect of an xread block.
type Flavor int

const (
	TNT Flavor = iota
	Hennig
)

// tntWeightScale turns fractional weights into the integer weights TNT and
// Hennig86 accept. A source with a total weight of 1 gets a total of about
// 100.
const tntWeightScale = 100

// WriteNexus writes the matrix as a NEXUS DATA block. Down-weighted
// matrices also get an ASSUMPTIONS block with a WTSET.
func WriteNexus(w io.Writer, m *Matrix) error {
	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}

	names := make([]string, len(m.Taxa))
	width := 0
	for i, taxon := range m.Taxa {
		names[i] = newick.QuoteName(taxon, false)
		if len(names[i]) > width {
			width = len(names[i])
		}
	}

	pf("#NEXUS\n\n")
	pf("BEGIN DATA;\n")
	pf("\tDIMENSIONS NTAX=%d NCHAR=%d;\n", m.NTaxa(), m.NChar())
	pf("\tFORMAT SYMBOLS=\"01\" MISSING=%c;\n", Missing)
	pf("\tMATRIX\n")
	for i := range m.Taxa {
		pf("%-*s %s\n", width, names[i], m.RowString(i))
	}
	pf("\t;\nEND;\n")

	if m.Weighted() {
		pf("\nBEGIN ASSUMPTIONS;\n")
		pf("\tWTSET * MRP_weights = ")
		for i, g := range groupWeights(m.Weights, newick.FormatFloat) {
			if i > 0 {
				pf(", ")
			}
			pf("%s: %s", g.weight, strings.Join(g.ranges(1, "-"), " "))
		}
		pf(";\nEND;\n")
	}
	return err
}

// WriteTNT writes the matrix in TNT format, followed by 'proc /;'.
func WriteTNT(w io.Writer, m *Matrix) error {
	if err := WriteXread(w, m, TNT); err != nil {
		return err
	}
	_, err := io.WriteString(w, "proc /;\n")
	return err
}

// WriteHennig writes the matrix in Hennig86 format, followed by 'proc /;'.
func WriteHennig(w io.Writer, m *Matrix) error {
	if err := WriteXread(w, m, Hennig); err != nil {
		return err
	}
	_, err := io.WriteString(w, "proc /;\n")
	return err
}

// WriteXread writes the xread block (and character weights, if any) but
// does not end the file. More commands, such as a tread block, may follow.
func WriteXread(w io.Writer, m *Matrix, flavor Flavor) error {
	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, v...)
	}

	pf("xread\n")
	if flavor == TNT {
		pf("'Matrix representation of %d source characters'\n", m.NChar())
	}
	pf("%d %d\n", m.NChar(), m.NTaxa())
	for i, taxon := range m.Taxa {
		pf("%s %s\n", tnt.Name(taxon), m.RowString(i))
	}
	pf(";\n")

	ccode := "ccode"
	if flavor == Hennig {
		ccode = "cc"
		pf("cc - .;\n")
	}
	if m.Weighted() {
		scaled := func(w float64) string {
			return fmt.Sprintf("%d", int(math.Max(1, math.Round(w*tntWeightScale))))
		}
		for _, g := range groupWeights(m.Weights, scaled) {
			pf("%s /%s %s;\n", ccode, g.weight, strings.Join(g.ranges(0, "."), " "))
		}
	}
	return err
}

type weightGroup struct {
	weight  string
	columns []int
}

// groupWeights groups character indexes by their rendered weight, in order
// of first appearance.
func groupWeights(weights []float64, render func(float64) string) []weightGroup {
	var groups []weightGroup
	index := make(map[string]int)
	for j, w := range weights {
		key := render(w)
		k, ok := index[key]
		if !ok {
			k = len(groups)
			index[key] = k
			groups = append(groups, weightGroup{weight: key})
		}
		groups[k].columns = append(groups[k].columns, j)
	}
	return groups
}

// ranges collapses the sorted columns of a group into runs. Columns are
// numbered from `base`; runs are joined with `sep`.
func (g weightGroup) ranges(base int, sep string) []string {
	var out []string
	for i := 0; i < len(g.columns); {
		j := i
		for j+1 < len(g.columns) && g.columns[j+1] == g.columns[j]+1 {
			j++
		}
		if i == j {
			out = append(out, fmt.Sprintf("%d", g.columns[i]+base))
		} else {
			out = append(out, fmt.Sprintf("%d%s%d", g.columns[i]+base, sep,
				g.columns[j]+base))
		}
		i = j + 1
	}
	return out
}
