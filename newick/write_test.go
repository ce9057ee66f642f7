package newick

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:          "1",
		0:          "0",
		0.5:        "0.5",
		2.50:       "2.5",
		0.123456:   "0.12346",
		-0.000001:  "0",
		1234.00001: "1234.00001",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFloat(in))
	}
}

func TestQuoteName(t *testing.T) {
	assert.Equal(t, "Homo_sapiens", QuoteName("Homo_sapiens", false))
	assert.Equal(t, "'Homo sapiens'", QuoteName("Homo sapiens", false))
	assert.Equal(t, "'O''Brien'", QuoteName("O'Brien", false))
	assert.Equal(t, "'a,b'", QuoteName("a,b", false))
	assert.Equal(t, "12", QuoteName("12", false))
	assert.Equal(t, "'12'", QuoteName("12", true))
}

func TestFormatSupportOnLeaf(t *testing.T) {
	tree := &Tree{Root: &Node{Children: []*Node{
		{Name: "A", Support: 50, HasSupport: true, Length: 1, HasLength: true},
		{Name: "B"},
	}}}
	assert.Equal(t, "(A[50]:1,B);\n", Format(tree))

	back := mustParse(t, Format(tree))
	assert.Equal(t, 50.0, back.Root.Children[0].Support)
}

func TestWriter(t *testing.T) {
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	trees := []*Tree{mustParse(t, "(A,B);"), mustParse(t, "(C:1,D:2.5);")}
	require.NoError(t, w.WriteAll(trees))
	assert.Equal(t, "(A,B);\n(C:1,D:2.5);\n", buf.String())

	again, err := NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, []string{"C", "D"}, again[1].Taxa())
}
