package newick

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	r := NewReader(sample("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;"))
	trees, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, trees, 2)

	assert.Equal(t, "ROOT", trees[0].Root.Name)
	assert.Equal(t, []string{"A", "B", "X", "Y"}, trees[0].Taxa())
	assert.Equal(t, "C", trees[0].Root.Children[2].Name)
	assert.Equal(t, []string{"A", "B", "C"}, trees[1].Taxa())
}

func TestParseLengthsAndSupport(t *testing.T) {
	tree, err := Parse("((A:0.1,B:0.2)[95]:0.3,(C,D)80:1.5,E);")
	require.NoError(t, err)

	ab := tree.Root.Children[0]
	assert.True(t, ab.HasSupport)
	assert.Equal(t, 95.0, ab.Support)
	assert.True(t, ab.HasLength)
	assert.Equal(t, 0.3, ab.Length)
	assert.Equal(t, 0.1, ab.Children[0].Length)

	cd := tree.Root.Children[1]
	assert.Empty(t, cd.Name)
	assert.Equal(t, 80.0, cd.Support)
	assert.Equal(t, 1.5, cd.Length)

	e := tree.Root.Children[2]
	assert.False(t, e.HasLength)
	assert.Equal(t, 0.0, e.Length)
}

func TestParseLabels(t *testing.T) {
	tree, err := Parse("('Homo sapiens':0.5,'O''Brien',Pan_troglodytes,'42'[&R]);")
	require.NoError(t, err)
	assert.Equal(t, []string{"Homo sapiens", "O'Brien", "Pan_troglodytes", "42"},
		tree.Taxa())
	assert.Equal(t, []string{"Homo sapiens", "O'Brien", "Pan troglodytes", "42"},
		tree.PrettyTaxa())
}

func TestParseNumericLeaves(t *testing.T) {
	tree, err := Parse("(1,2,(3,4)99);")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, tree.Taxa())
	assert.Equal(t, 99.0, tree.Root.Children[2].Support)
}

func TestParseEmpty(t *testing.T) {
	tree, err := Parse(" ;\n")
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, ";\n", Format(tree))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing close", "((A,B),C;"},
		{"missing close at eof", "(A,B"},
		{"extra close", "(A,B));"},
		{"missing terminal", "(A,B)"},
		{"two labels", "(A B,C);"},
		{"unnamed leaf", "(,A);"},
		{"empty descendents", "();"},
		{"quote in label", "(A,B'C);"},
		{"bad length", "(A:x,B);"},
		{"two lengths", "(A:1:2,B);"},
		{"bad number", "(A:1.2.3,B);"},
		{"trailing tree", "(A,B);(C,D);"},
		{"no tree", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTree), "%v", err)

			var malformed *MalformedTreeError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse("(A,\nB,\nC")
	var malformed *MalformedTreeError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 3, malformed.Line)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;",
		"(A,B,(X,Y)C)ROOT;",
		"((A:0.123456,B:2)[95]:0.3,('C d':1,'e''f')'7':4);",
		"(A,(B,(C,(D,E))));",
		"leaf;",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)
			text := Format(first)

			second, err := Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, Format(second))
			assert.Equal(t, first.Taxa(), second.Taxa())
			assert.True(t, Equal(first, second))
		})
	}
}

func TestParseMultiByteAcrossReads(t *testing.T) {
	// The lexer reads 4096 bytes at a time; 'é' straddles the first read.
	for _, pad := range []int{4092, 4093, 4094, 4095} {
		text := strings.Repeat(" ", pad) + "('xé',Bö);"
		tree, err := Parse(text)
		require.NoError(t, err, "padding %d", pad)
		assert.Equal(t, []string{"xé", "Bö"}, tree.Taxa(), "padding %d", pad)
	}
}
