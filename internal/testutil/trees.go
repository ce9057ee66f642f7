package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

// Trees builds a tree set from alternating names and Newick strings,
// failing the test on any parse or naming error.
func Trees(t testing.TB, pairs ...string) *treeset.Set {
	t.Helper()
	require.True(t, len(pairs)%2 == 0, "Trees needs name/newick pairs")
	set := &treeset.Set{}
	for i := 0; i < len(pairs); i += 2 {
		tree, err := newick.Parse(pairs[i+1])
		require.NoError(t, err, "tree %s", pairs[i])
		require.NoError(t, set.Add(pairs[i], tree))
	}
	return set
}
