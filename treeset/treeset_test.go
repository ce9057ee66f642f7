package treeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supertree-toolkit/stk/newick"
)

func mustSet(t *testing.T, pairs ...string) *Set {
	t.Helper()
	s := &Set{}
	for i := 0; i < len(pairs); i += 2 {
		tree, err := newick.Parse(pairs[i+1])
		require.NoError(t, err)
		require.NoError(t, s.Add(pairs[i], tree))
	}
	return s
}

func TestSetOrder(t *testing.T) {
	s := mustSet(t,
		"Hill_2011_1", "((A,B),C);",
		"Davis_2009_1", "((C,D),(B,E));",
	)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Hill_2011_1", "Davis_2009_1"}, s.Names())
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, s.Taxa())

	tree, ok := s.Get("Davis_2009_1")
	require.True(t, ok)
	assert.Equal(t, []string{"C", "D", "B", "E"}, tree.Taxa())

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestSetDuplicateName(t *testing.T) {
	s := mustSet(t, "a", "(A,B);")
	assert.Error(t, s.Add("a", &newick.Tree{}))

	_, err := New(Named{"x", &newick.Tree{}}, Named{"x", &newick.Tree{}})
	assert.Error(t, err)
}

func TestAnonymous(t *testing.T) {
	s := mustSet(t, "Hill", "(A,B);", "Davis", "(C,D);", "Smith", "(E,F);")
	anon := s.Anonymous()
	assert.Equal(t, []string{"tree_1", "tree_2", "tree_3"}, anon.Names())
	for i, nt := range anon.All() {
		assert.Same(t, s.All()[i].Tree, nt.Tree)
	}
	assert.Equal(t, []string{"Hill", "Davis", "Smith"}, s.Names())
}

func TestMap(t *testing.T) {
	s := mustSet(t, "a", "((A,B),C);", "b", "(B,D);")
	out := s.Map(func(tree *newick.Tree) *newick.Tree {
		return newick.DeleteTaxon("B", tree)
	})
	assert.Equal(t, []string{"a", "b"}, out.Names())
	assert.Equal(t, []string{"A", "C", "D"}, out.Taxa())
	assert.Equal(t, []string{"A", "B", "C", "D"}, s.Taxa())
}

func TestOccurrences(t *testing.T) {
	s := mustSet(t, "a", "((A,B),C);", "b", "(B,(C,D));", "c", "(B,E);")
	assert.Equal(t, []Occurrence{
		{"B", 3}, {"C", 2}, {"A", 1}, {"D", 1}, {"E", 1},
	}, s.Occurrences())
}

func TestOverlap(t *testing.T) {
	s := mustSet(t,
		"a", "((A,B),C);",
		"b", "((X,Y),Z);",
		"c", "((B,C),D);",
		"d", "((D,C),Q);",
		"e", "((Y,Z),W);",
	)
	assert.Equal(t, [][]string{{"a", "c", "d"}, {"b", "e"}}, s.Overlap(2))
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}, s.Overlap(3))
}
