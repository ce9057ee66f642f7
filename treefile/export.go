package treefile

import (
	"bytes"

	"github.com/supertree-toolkit/stk/matrix"
	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/nexus"
	"github.com/supertree-toolkit/stk/tnt"
	"github.com/supertree-toolkit/stk/treeset"
)

// Options controls an export.
type Options struct {
	// Anonymous replaces the tree names by tree_1 .. tree_n, in set order.
	Anonymous bool

	// Matrix is used to build the character matrix of the TNT and Hennig
	// formats.
	Matrix matrix.Options
}

// Export writes every tree of the set in the given format.
//
//   - Newick: one tree per line. Tree names are not written.
//   - Nexus: a TREES block with a TRANSLATE table.
//   - TNT: the character matrix of the trees followed by a tread block of
//     the trees themselves.
//   - Hennig: the character matrix only.
func Export(set *treeset.Set, format Format, opts Options) (string, error) {
	if opts.Anonymous {
		set = set.Anonymous()
	}
	buf := new(bytes.Buffer)
	switch format {
	case Newick:
		if err := newick.NewWriter(buf).WriteAll(set.Trees()); err != nil {
			return "", err
		}
	case Nexus:
		if err := nexus.WriteTrees(buf, set); err != nil {
			return "", err
		}
	case TNT:
		m, err := matrix.Build(set, opts.Matrix)
		if err != nil {
			return "", err
		}
		if err := matrix.WriteXread(buf, m, matrix.TNT); err != nil {
			return "", err
		}
		if err := tnt.WriteTrees(buf, set); err != nil {
			return "", err
		}
		buf.WriteString("proc /;\n")
	case Hennig:
		m, err := matrix.Build(set, opts.Matrix)
		if err != nil {
			return "", err
		}
		return ExportMatrix(m, format)
	default:
		return "", &UnsupportedFormatError{format.String()}
	}
	return buf.String(), nil
}

// ExportMatrix writes a character matrix. Newick cannot hold a matrix and
// is rejected with an *UnsupportedFormatError.
func ExportMatrix(m *matrix.Matrix, format Format) (string, error) {
	buf := new(bytes.Buffer)
	var err error
	switch format {
	case Nexus:
		err = matrix.WriteNexus(buf, m)
	case TNT:
		err = matrix.WriteTNT(buf, m)
	case Hennig:
		err = matrix.WriteHennig(buf, m)
	default:
		return "", &UnsupportedFormatError{format.String()}
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
