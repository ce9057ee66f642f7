package newick

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Precision is the number of decimal places used for branch lengths and
// support values. Trailing zeros are dropped, so 1.0 is written as "1".
const Precision = 5

// Format returns the canonical Newick string for a tree, terminated by ';'
// and a new line. Children are written in their stored order.
//
// An empty tree is written as ";\n".
func Format(t *Tree) string {
	var b strings.Builder
	if !t.IsEmpty() {
		writeNode(&b, t.Root)
	}
	b.WriteString(";\n")
	return b.String()
}

// Newick is shorthand for Format(t).
func (t *Tree) Newick() string {
	return Format(t)
}

func writeNode(b *strings.Builder, n *Node) {
	internal := !n.IsLeaf()
	if internal {
		b.WriteByte(descStart)
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte(descDelimiter)
			}
			writeNode(b, child)
		}
		b.WriteByte(descEnd)
	}
	if len(n.Name) > 0 {
		b.WriteString(QuoteName(n.Name, internal))
	}
	if n.HasSupport {
		if len(n.Name) > 0 || !internal {
			b.WriteByte(commentStart)
			b.WriteString(FormatFloat(n.Support))
			b.WriteByte(commentEnd)
		} else {
			b.WriteString(FormatFloat(n.Support))
		}
	}
	if n.HasLength {
		b.WriteByte(lengthStart)
		b.WriteString(FormatFloat(n.Length))
	}
}

// FormatFloat renders v with Precision decimal places and strips trailing
// zeros.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// QuoteName returns name as it should appear in Newick output. Names with
// structural characters or white space are quoted. Names of internal nodes
// that look like numbers are quoted too, or they would be read back as
// support values.
func QuoteName(name string, internal bool) string {
	needs := strings.ContainsAny(name, unquoteBanned+"\t\n\r")
	if !needs && internal {
		_, needs = parseNumber(name)
	}
	if !needs {
		return name
	}
	return "'" + strings.Replace(name, "'", "''", -1) + "'"
}

// A Writer writes trees to Newick encoded output, one tree per line.
type Writer struct {
	buf *bufio.Writer
}

// NewWriter creates a new Newick writer that can write trees to an
// io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single tree to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(t *Tree) error {
	_, err := w.buf.WriteString(Format(t))
	return err
}

// WriteAll writes a slice of trees to the underlying io.Writer, and calls
// Flush.
func (w *Writer) WriteAll(trees []*Tree) error {
	for _, t := range trees {
		if err := w.Write(t); err != nil {
			return err
		}
	}
	return w.Flush()
}
