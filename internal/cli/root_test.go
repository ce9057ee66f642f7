package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treefile"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	t.Log(errOut.String())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

type fixture struct {
	dir  string
	a, b string
}

func setup(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	return fixture{
		dir: dir,
		a:   writeFile(t, dir, "Hill_2011.tre", "((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;\n"),
		b:   writeFile(t, dir, "Davis_2009.tre", "(A_1,(B_1,(C,D)));\n((C,D),(E_1,Q));\n"),
	}
}

func TestTaxa(t *testing.T) {
	f := setup(t)
	out, err := run(t, "taxa", f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, "A_1\nB_1\nC\nD\nE_1\nF_1\nG_1\nH_1\nQ\n", out)

	out, err = run(t, "taxa", "--pretty", f.a)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "A 1\nB 1\n"))
}

func TestExport(t *testing.T) {
	f := setup(t)
	out, err := run(t, "export", "--format", "nexus", f.a, f.b)
	require.NoError(t, err)

	set, err := treefile.ReadTrees(strings.NewReader(out), treefile.KindNexus, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hill_2011_1", "Davis_2009_1", "Davis_2009_2"}, set.Names())

	out, err = run(t, "export", "--format", "nexus", "--anonymous", f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "TREE tree_3 = ")
	assert.NotContains(t, out, "Davis_2009")
}

func TestExportUnsupportedFormat(t *testing.T) {
	f := setup(t)
	_, err := run(t, "export", "--format", "bogus", f.a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, treefile.ErrUnsupportedFormat))
}

func TestExportToFile(t *testing.T) {
	f := setup(t)
	path := filepath.Join(f.dir, "out.tre")
	out, err := run(t, "export", "-f", "newick", "-o", path, f.b)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(A_1,(B_1,(C,D)));\n((C,D),(E_1,Q));\n", string(data))
}

func TestConfigFile(t *testing.T) {
	f := setup(t)
	cfg := writeFile(t, f.dir, "stk.yaml", "format: newick\n")
	out, err := run(t, "--config", cfg, "export", f.a)
	require.NoError(t, err)
	assert.Equal(t, "((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;\n", out)
}

func TestMatrix(t *testing.T) {
	f := setup(t)
	out, err := run(t, "matrix", "--format", "tnt", "--outgroup", f.a, f.b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "xread\n"))
	assert.Contains(t, out, "MRP_Outgroup")
	assert.True(t, strings.HasSuffix(out, "proc /;\n"))

	_, err = run(t, "matrix", "--format", "newick", f.a)
	assert.True(t, errors.Is(err, treefile.ErrUnsupportedFormat))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	out, err := run(t, "delete", "--taxa", "H_1", "-f", "newick", f.a)
	require.NoError(t, err)
	assert.Equal(t, "((A_1:1,B_1:1)0:0,F_1:1,E_1:1,G_1:1)0:0;\n", out)

	_, err = run(t, "delete", f.a)
	assert.Error(t, err)
}

const project = `<phylo_storage>
  <sources>
    <source name="Hill_2011">
      <source_tree>
        <tree><tree_string><string_value lines="1">(A,(B,(C,D)));</string_value></tree_string></tree>
      </source_tree>
    </source>
  </sources>
</phylo_storage>
`

func TestDeletePHYML(t *testing.T) {
	f := setup(t)
	path := writeFile(t, f.dir, "project.phyml", project)
	out, err := run(t, "delete", "--taxa", "C", path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(project, "(A,(B,(C,D)));", "(A,(B,D));", 1), out)
}

func TestSubstitute(t *testing.T) {
	f := setup(t)
	out, err := run(t, "substitute", "--old", "Q", "--new", "Q1, Q2", "-f", "newick", f.b)
	require.NoError(t, err)
	assert.Equal(t, "(A_1,(B_1,(C,D)));\n((C,D),(E_1,(Q1,Q2)));\n", out)

	subsFile := writeFile(t, f.dir, "subs.txt", "# synonyms\nC = D\n")
	path := writeFile(t, f.dir, "project.phyml", project)
	out, err = run(t, "substitute", "--subs", subsFile, path)
	require.NoError(t, err)
	assert.Contains(t, out, "(A,(B,(D,D)));")
}

func TestSummary(t *testing.T) {
	f := setup(t)
	out, err := run(t, "summary", "--occurrences", f.a, f.b)
	require.NoError(t, err)
	// Table headers and footers are upper cased.
	for _, want := range []string{"HILL_2011_1", "DAVIS_2009_2", "POLYTOMIES", "3 TREES", "TAXON"} {
		assert.Contains(t, strings.ToUpper(out), want)
	}
}

func TestOverlap(t *testing.T) {
	f := setup(t)
	out, err := run(t, "overlap", f.a, f.b)
	require.NoError(t, err)
	assert.Contains(t, out, "All 3 trees overlap")

	far := writeFile(t, f.dir, "far.tre", "(X,(Y,Z));\n")
	out, err = run(t, "overlap", f.a, far)
	require.NoError(t, err)
	assert.Contains(t, out, "2 disconnected groups")
}

func TestGeneralise(t *testing.T) {
	f := setup(t)
	tax := writeFile(t, f.dir, "taxonomy.yaml", `
Homo_sapiens: {genus: Homo}
Homo_erectus: {genus: Homo}
Pan_troglodytes: {genus: Pan}
`)
	trees := writeFile(t, f.dir, "apes.tre",
		"((Homo_sapiens,Homo_erectus),(Pan_troglodytes,Gorilla));\n")
	out, err := run(t, "generalise", "--taxonomy", tax, "--rank", "genus", "-f", "newick", trees)
	require.NoError(t, err)
	assert.Equal(t, "(Homo,(Pan,Gorilla));\n", out)

	_, err = run(t, "generalise", "--taxonomy", tax, "--rank", "clade", trees)
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	f := setup(t)
	db := filepath.Join(f.dir, "collection.db")

	out, err := run(t, "--store", db, "store", "add", f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, "Added 3 trees (3 in collection).\n", out)

	_, err = run(t, "--store", db, "store", "add", f.a)
	assert.Error(t, err, "tree names are unique in a collection")

	out, err = run(t, "--store", db, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Davis_2009_2")
	assert.Contains(t, out, "(3 trees)")

	out, err = run(t, "--store", db, "store", "export", "-f", "newick")
	require.NoError(t, err)
	set, err := treefile.ReadTrees(strings.NewReader(out), treefile.KindNewick, "x")
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	first, err := newick.Parse("((A_1,B_1),F_1,E_1,(G_1,H_1));")
	require.NoError(t, err)
	assert.True(t, newick.Equal(first, set.Trees()[0]))

	out, err = run(t, "--store", db, "store", "remove", "Hill_2011_1")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 trees.\n", out)
}
