// Package treefile exports collections of trees (and their character
// matrices) to the supported interchange formats, and imports trees from
// files in any of them.
package treefile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is matched by every *UnsupportedFormatError through
// errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError is returned when an unknown format is requested.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format '%s' (expected one of %s)",
		e.Format, strings.Join(FormatNames(), ", "))
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Format is an export format.
type Format int

const (
	Newick Format = iota
	Nexus
	TNT
	Hennig
)

var formatNames = []string{"newick", "nexus", "tnt", "hennig"}

// FormatNames lists the names accepted by ParseFormat.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// ParseFormat returns the format with the given (case insensitive) name.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Format(i), nil
		}
	}
	return 0, &UnsupportedFormatError{name}
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}
