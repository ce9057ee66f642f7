package newick

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is matched by every *MalformedTreeError through
// errors.Is.
var ErrMalformedTree = errors.New("malformed newick tree")

// MalformedTreeError is returned when Newick input cannot be parsed: the
// parentheses are unbalanced, the terminating ';' is missing, an unquoted
// label contains a structural character, and so on.
type MalformedTreeError struct {
	Line int
	Msg  string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("Error on line %d: %s", e.Line, e.Msg)
}

func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

func errf(line int, format string, v ...interface{}) error {
	return &MalformedTreeError{Line: line, Msg: fmt.Sprintf(format, v...)}
}

func expectErr(item item, expected string) error {
	if item.typ == itemError {
		return errf(item.line, "%s", item.val)
	}
	return errf(item.line, "Unexpected %s, expected %s.", item.typ, expected)
}
