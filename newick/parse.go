package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	*lexer
	peeked *item
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{lexer: lex(r)}
}

// Parse reads exactly one tree from `text`. Anything other than whitespace
// after the terminating ';' is an error.
func Parse(text string) (*Tree, error) {
	r := NewReader(strings.NewReader(text))
	tree, err := r.ReadTree()
	if err == io.EOF {
		return nil, errf(1, "No tree found.")
	} else if err != nil {
		return nil, err
	}
	if item := r.token(); item.typ != itemEOF {
		return nil, expectErr(item, "the end of input after a single tree")
	}
	return tree, nil
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (r *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil `Tree` is returned with `io.EOF` as the error.
// A lone ';' is read as the empty tree.
func (r *Reader) ReadTree() (*Tree, error) {
	item := r.token()
	switch item.typ {
	case itemEOF:
		return nil, io.EOF
	case itemTerminal:
		return &Tree{}, nil
	}

	root, err := r.parse(item)
	if err != nil {
		return nil, err
	}

	item = r.token()
	switch item.typ {
	case itemTerminal:
		return &Tree{Root: root}, nil
	case itemEOF:
		return nil, errf(item.line, "Missing terminating '%c'.", terminal)
	case itemDescendentsEnd:
		return nil, errf(item.line, "Unbalanced parentheses: unexpected '%c'.",
			descEnd)
	}
	return nil, expectErr(item, fmt.Sprintf("a terminal '%c'", terminal))
}

func (r *Reader) token() item {
	if r.peeked != nil {
		item := *r.peeked
		r.peeked = nil
		return item
	}
	return r.nextItem()
}

func (r *Reader) unread(item item) {
	r.peeked = &item
}

// parse reads one subtree starting at `first`.
func (r *Reader) parse(first item) (*Node, error) {
	node := &Node{}
	switch first.typ {
	case itemDescendentsStart:
		// good to go!
	case itemLabel, itemQuotedLabel, itemComment, itemLength:
		r.unread(first)
		if err := r.annotate(node, false); err != nil {
			return nil, err
		}
		if len(node.Name) == 0 {
			return nil, errf(first.line, "Found a leaf without a name.")
		}
		return node, nil
	case itemDelimiter, itemDescendentsEnd, itemTerminal:
		return nil, errf(first.line, "Found a leaf without a name.")
	case itemEOF:
		return nil, errf(first.line,
			"Unbalanced parentheses: input ended inside a subtree.")
	default:
		return nil, expectErr(first, "a descendent list or a subtree")
	}

	// If we're here, then we're starting a descendent list.
	// Now we should expect one or more subtrees separated by delimiters.
TOKENS:
	for {
		child, err := r.parse(r.token())
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)

		item := r.token()
		switch item.typ {
		case itemDelimiter:
			continue
		case itemDescendentsEnd:
			break TOKENS
		case itemEOF, itemTerminal:
			return nil, errf(item.line,
				"Unbalanced parentheses: missing '%c'.", descEnd)
		default:
			return nil, expectErr(item, fmt.Sprintf("'%c' or '%c'",
				descDelimiter, descEnd))
		}
	}

	// After a descendent list, an optional label, comments and length.
	if err := r.annotate(node, true); err != nil {
		return nil, err
	}
	return node, nil
}

// annotate reads the optional label, comments and branch length that
// follow a leaf or a closing parenthesis.
func (r *Reader) annotate(node *Node, internal bool) error {
	item := r.token()
	switch item.typ {
	case itemLabel:
		if support, ok := parseNumber(item.val); internal && ok {
			node.Support, node.HasSupport = support, true
		} else {
			node.Name = item.val
		}
		item = r.token()
	case itemQuotedLabel:
		node.Name = item.val
		item = r.token()
	}

	for {
		switch item.typ {
		case itemComment:
			if support, ok := parseNumber(item.val); ok {
				node.Support, node.HasSupport = support, true
			}
		case itemLength:
			if node.HasLength {
				return errf(item.line, "Found two branch lengths for '%s'.",
					node.Name)
			}
			length, err := strconv.ParseFloat(item.val, 64)
			if err != nil {
				return errf(item.line, "Invalid branch length '%s'.", item.val)
			}
			node.Length, node.HasLength = length, true
		default:
			r.unread(item)
			return nil
		}
		item = r.token()
	}
}

// parseNumber only accepts plain decimal literals, so labels like "Inf" or
// "NaN" stay names.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || !strings.ContainsRune("0123456789.-+", rune(s[0])) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
