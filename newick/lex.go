package newick

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendentsStart
	itemDescendentsEnd
	itemDelimiter
	itemLabel
	itemQuotedLabel
	itemLength
	itemComment
)

const (
	eof           = 0
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	lengthStart   = ':'
	commentStart  = '['
	commentEnd    = ']'
)

const unquoteBanned = " ()[]':;,"

type stateFn func(lx *lexer) stateFn

type lexer struct {
	input *bufio.Reader
	buf   string
	start int
	pos   int
	width int
	line  int
	state stateFn
	items chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil {
				return item{itemEOF, "", lx.line}
			}
			lx.state = lx.state(lx)
		}
	}
}

func lex(input io.Reader) *lexer {
	return &lexer{
		input: bufio.NewReader(input),
		buf:   "",
		state: lexTree,
		line:  1,
		items: make(chan item, 10),
	}
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.emitVal(typ, lx.current())
}

func (lx *lexer) emitVal(typ itemType, val string) {
	lx.items <- item{typ, val, lx.line}
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

// next returns the next rune of input. More input is read whenever the
// buffer ends inside a multi-byte character.
func (lx *lexer) next() (r rune) {
	for lx.pos >= len(lx.buf) || !utf8.FullRuneInString(lx.buf[lx.pos:]) {
		buf := make([]byte, 4096)
		n, err := lx.input.Read(buf)
		lx.buf += string(buf[0:n])
		if n == 0 && err != nil {
			break
		}
	}
	if lx.pos >= len(lx.buf) {
		lx.width = 0
		return eof
	}

	if lx.buf[lx.pos] == '\n' {
		lx.line++
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.width > 0 && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
// Characters should be passed through escapeSpecial first.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return nil
}

// lexTree is the only resting state. Every token returns to it once it
// has been emitted.
func lexTree(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		lx.ignore()
		return lexTree
	}

	switch r {
	case eof:
		lx.emit(itemEOF)
		return nil
	case descStart:
		lx.emit(itemDescendentsStart)
	case descEnd:
		lx.emit(itemDescendentsEnd)
	case descDelimiter:
		lx.emit(itemDelimiter)
	case terminal:
		lx.emit(itemTerminal)
	case lengthStart:
		lx.ignore()
		return lexLength
	case commentStart:
		lx.ignore()
		return lexComment
	case quote:
		lx.ignore()
		return lexQuoted
	case commentEnd:
		return lx.errorf("Found '%s' outside of a comment.", escapeSpecial(r))
	default:
		lx.backup()
		return lexLabel
	}
	return lexTree
}

func lexLabel(lx *lexer) stateFn {
	r := lx.next()
	if r == eof || isNL(r) || strings.ContainsRune(unquoteBanned, r) ||
		r == '\t' {
		if r == quote {
			return lx.errorf("Found '%s' in an unquoted label, which may "+
				"not contain the following characters: '%s'.",
				escapeSpecial(r), unquoteBanned)
		}
		lx.backup()
		lx.emit(itemLabel)
		return lexTree
	}
	return lexLabel
}

// lexQuoted consumes a quoted label. Two consecutive quotes inside the
// label stand for a single literal quote.
func lexQuoted(lx *lexer) stateFn {
	var label strings.Builder
	for {
		r := lx.next()
		switch r {
		case eof:
			return lx.errorf("Unterminated quoted label.")
		case quote:
			if lx.peek() == quote {
				lx.next()
				label.WriteRune(quote)
				continue
			}
			lx.emitVal(itemQuotedLabel, label.String())
			return lexTree
		default:
			label.WriteRune(r)
		}
	}
}

func lexComment(lx *lexer) stateFn {
	for {
		r := lx.next()
		switch r {
		case eof:
			return lx.errorf("Unterminated comment.")
		case commentEnd:
			val := lx.current()
			lx.emitVal(itemComment, val[:len(val)-1])
			return lexTree
		}
	}
}

func lexLength(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) {
		lx.ignore()
		return lexLength
	}
	lx.backup()
	return lexLengthNum
}

func lexLengthNum(lx *lexer) stateFn {
	r := lx.next()
	if isDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
		return lexLengthNum
	}
	lx.backup()
	if lx.pos == lx.start {
		return lx.errorf("Expected a branch length after '%c', but got "+
			"'%s' instead.", lengthStart, escapeSpecial(r))
	}
	lx.emit(itemLength)
	return lexTree
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemTerminal:
		return "Terminal"
	case itemDescendentsStart:
		return "Descendents (start)"
	case itemDescendentsEnd:
		return "Descendents (end)"
	case itemDelimiter:
		return "Delimiter"
	case itemLabel:
		return "Label"
	case itemQuotedLabel:
		return "Quoted label"
	case itemLength:
		return "Branch length"
	case itemComment:
		return "Comment"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case eof:
		return "EOF"
	}
	return string(c)
}
