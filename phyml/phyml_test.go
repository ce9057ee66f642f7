package phyml

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/subs"
)

const doc = `<?xml version='1.0' encoding='utf-8'?>
<phylo_storage>
  <project_name>
    <string_value lines="1">Test</string_value>
  </project_name>
  <sources>
    <source name="Hill_2011">
      <bibliographic_information>
        <article><title><string_value lines="1">Trees &amp; such</string_value></title></article>
      </bibliographic_information>
      <source_tree>
        <tree>
          <tree_string>
            <string_value lines="1">((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;</string_value>
          </tree_string>
        </tree>
      </source_tree>
      <source_tree>
        <tree>
          <tree_string>
            <string_value lines="1">(A_1,('Homo sapiens',C));</string_value>
          </tree_string>
        </tree>
      </source_tree>
    </source>
    <source name="Davis_2009">
      <source_tree name="Davis_2009_mol">
        <tree>
          <tree_string>
            <string_value lines="1">(Q,(R,S));</string_value>
          </tree_string>
        </tree>
      </source_tree>
    </source>
  </sources>
</phylo_storage>
`

func TestReadTrees(t *testing.T) {
	set, err := ReadTrees([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hill_2011_1", "Hill_2011_2", "Davis_2009_mol"},
		set.Names())

	tree, ok := set.Get("Hill_2011_2")
	require.True(t, ok)
	assert.Equal(t, []string{"A_1", "Homo sapiens", "C"}, tree.Taxa())
}

func TestReadTreesErrors(t *testing.T) {
	_, err := ReadTrees([]byte("<phylo_storage><sources>"))
	assert.Error(t, err)

	bad := strings.Replace(doc, "(Q,(R,S));", "(Q,(R,S);", 1)
	_, err = ReadTrees([]byte(bad))
	require.Error(t, err)
	assert.True(t, errors.Is(err, newick.ErrMalformedTree))
	assert.Contains(t, err.Error(), "Davis_2009_mol")
}

func TestAllTaxa(t *testing.T) {
	taxa, err := AllTaxa([]byte(doc), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A_1", "B_1", "C", "E_1", "F_1", "G_1", "H_1",
		"Homo sapiens", "Q", "R", "S"}, taxa)

	pretty, err := AllTaxa([]byte(doc), true)
	require.NoError(t, err)
	assert.Contains(t, pretty, "A 1")
	assert.NotContains(t, pretty, "A_1")
}

func TestDeleteTaxa(t *testing.T) {
	out, err := DeleteTaxa([]byte(doc), []string{"H_1", "R"})
	require.NoError(t, err)

	expect := strings.Replace(doc,
		"((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;",
		"((A_1:1,B_1:1)0:0,F_1:1,E_1:1,G_1:1)0:0;", 1)
	expect = strings.Replace(expect, "(Q,(R,S));", "(Q,S);", 1)
	assert.Equal(t, expect, string(out))
}

func TestSubstituteTaxa(t *testing.T) {
	out, err := SubstituteTaxa([]byte(doc), []subs.Substitution{
		{Old: "Q", New: []string{"Q1", "Q2"}},
	})
	require.NoError(t, err)

	expect := strings.Replace(doc, "(Q,(R,S));", "((Q1,Q2),(R,S));", 1)
	assert.Equal(t, expect, string(out))

	set, err := ReadTrees(out)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestRewriteEscapes(t *testing.T) {
	out, err := RewriteTrees([]byte(doc), func(t *newick.Tree) *newick.Tree {
		return newick.SubstituteTaxon("C", []string{"C&D"}, t)
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "(A_1,('Homo sapiens',C&amp;D));")

	set, err := ReadTrees(out)
	require.NoError(t, err)
	tree, _ := set.Get("Hill_2011_2")
	assert.True(t, tree.HasTaxon("C&D"))
}
