package treefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/nexus"
	"github.com/supertree-toolkit/stk/phyml"
	"github.com/supertree-toolkit/stk/tnt"
	"github.com/supertree-toolkit/stk/treeset"
)

// Kind selects how a tree file is read.
type Kind int

const (
	KindNewick Kind = iota
	KindNexus
	KindTNT
	KindPHYML
)

func (k Kind) String() string {
	switch k {
	case KindNewick:
		return "newick"
	case KindNexus:
		return "nexus"
	case KindTNT:
		return "tnt"
	case KindPHYML:
		return "phyml"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var extensions = map[string]Kind{
	".phyml":  KindPHYML,
	".xml":    KindPHYML,
	".nex":    KindNexus,
	".nexus":  KindNexus,
	".nxs":    KindNexus,
	".tnt":    KindTNT,
	".hen":    KindTNT,
	".ss":     KindTNT,
	".nwk":    KindNewick,
	".newick": KindNewick,
	".tre":    KindNewick,
	".tree":   KindNewick,
}

// DetectKind resolves the kind of a file from its extension, and failing
// that, from the start of its contents.
func DetectKind(path string, data []byte) Kind {
	if k, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	return Sniff(data)
}

// Sniff guesses the kind of tree file from its contents. Newick is the
// fallback.
func Sniff(data []byte) Kind {
	head := strings.ToLower(string(bytes.TrimSpace(data)))
	switch {
	case strings.HasPrefix(head, "#nexus"):
		return KindNexus
	case strings.HasPrefix(head, "<"):
		return KindPHYML
	case strings.HasPrefix(head, "xread"), strings.HasPrefix(head, "tread"),
		strings.HasPrefix(head, "mxram"), strings.HasPrefix(head, "nstates"):
		return KindTNT
	}
	return KindNewick
}

// ReadTrees reads every tree from `r`. Newick trees have no names in the
// file, so they are called <base>_1, <base>_2 and so on.
func ReadTrees(r io.Reader, kind Kind, base string) (*treeset.Set, error) {
	switch kind {
	case KindNexus:
		return nexus.ReadTrees(r)
	case KindTNT:
		return tnt.ReadTrees(r)
	case KindPHYML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return phyml.ReadTrees(data)
	case KindNewick:
		trees, err := newick.NewReader(r).ReadAll()
		if err != nil {
			return nil, err
		}
		set := &treeset.Set{}
		for i, tree := range trees {
			if err := set.Add(fmt.Sprintf("%s_%d", base, i+1), tree); err != nil {
				return nil, err
			}
		}
		return set, nil
	}
	return nil, fmt.Errorf("unknown tree file kind %s", kind)
}

// ImportTrees reads every tree of the file at `path`.
func ImportTrees(path string) (*treeset.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	set, err := ReadTrees(bytes.NewReader(data), DetectKind(path, data), base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ImportTree returns the first tree of the file at `path` as a Newick
// string.
func ImportTree(path string) (string, error) {
	set, err := ImportTrees(path)
	if err != nil {
		return "", err
	}
	if set.Len() == 0 {
		return "", fmt.Errorf("%s: no trees found", path)
	}
	return newick.Format(set.Trees()[0]), nil
}

// ImportAll reads the trees of several files into one set. Tree names must
// be unique across the files.
func ImportAll(paths []string) (*treeset.Set, error) {
	all := &treeset.Set{}
	for _, path := range paths {
		set, err := ImportTrees(path)
		if err != nil {
			return nil, err
		}
		for _, nt := range set.All() {
			if err := all.Add(nt.Name, nt.Tree); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return all, nil
}
