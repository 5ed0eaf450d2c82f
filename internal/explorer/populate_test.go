package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []*Node) []string {
	out := make([]string, len(entries))
	for i, n := range entries {
		out[i] = n.Name
	}
	return out
}

func TestPopulateOrderingAndFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "build.log"), []byte(""), 0644))

	e := New(Options{ShowDotfiles: false, Ignore: []string{"*.log"}}, nil)

	var entries []*Node
	require.NoError(t, e.Populate(&entries, tmpDir, nil))

	assert.Equal(t, []string{"src", "README.md"}, names(entries))
	assert.Equal(t, KindDirectory, entries[0].Kind)
	assert.Equal(t, KindFile, entries[1].Kind)
}

func TestPopulateDirsThenLinksThenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "zdir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "afile.txt"), []byte(""), 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "zdir"), filepath.Join(tmpDir, "mlink")))
	// Keep grouping out of the picture: more than one category present.
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "adir"), 0755))

	e := New(Options{ShowDotfiles: true}, nil)

	var entries []*Node
	require.NoError(t, e.Populate(&entries, tmpDir, nil))

	require.Len(t, entries, 4)
	assert.Equal(t, KindDirectory, entries[0].Kind)
	assert.Equal(t, KindDirectory, entries[1].Kind)
	assert.Equal(t, KindSymlink, entries[2].Kind)
	assert.Equal(t, KindFile, entries[3].Kind)
}

func TestPopulateSkipsDanglingSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "keep.txt"), []byte(""), 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "nowhere"), filepath.Join(tmpDir, "broken")))

	e := New(Options{ShowDotfiles: true}, nil)

	var entries []*Node
	require.NoError(t, e.Populate(&entries, tmpDir, nil))

	assert.Equal(t, []string{"keep.txt"}, names(entries))
}

func TestPopulateScanFailure(t *testing.T) {
	e := New(Options{}, nil)

	entries := []*Node{newNode(KindFile, "/tmp", "sentinel")}
	err := e.Populate(&entries, "/does/not/exist", nil)

	assert.Error(t, err)
	assert.Equal(t, []string{"sentinel"}, names(entries), "entries must be untouched on scan failure")
}

func TestPopulateGroupingChain(t *testing.T) {
	// a/b/c/d where a, b, c each hold exactly one subdirectory and d
	// holds two files: one visual row a/b/c/d with d's files as the
	// row's entries.
	tmpDir := t.TempDir()
	leaf := filepath.Join(tmpDir, "a", "b", "c", "d")
	require.NoError(t, os.MkdirAll(leaf, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, "one.rs"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, "two.rs"), []byte(""), 0644))

	e := New(Options{ShowDotfiles: true, GroupEmptyDirs: true}, nil)

	owner := newDirectoryNode(tmpDir, "a")
	var entries []*Node
	require.NoError(t, e.Populate(&entries, owner.AbsolutePath, owner))

	require.NotNil(t, owner.GroupNext)
	assert.Equal(t, "b", owner.GroupNext.Name)
	require.NotNil(t, owner.GroupNext.GroupNext)
	assert.Equal(t, "c", owner.GroupNext.GroupNext.Name)
	require.NotNil(t, owner.GroupNext.GroupNext.GroupNext)
	assert.Equal(t, "d", owner.GroupNext.GroupNext.GroupNext.Name)
	assert.Nil(t, owner.GroupTail().GroupNext)

	assert.ElementsMatch(t, []string{"one.rs", "two.rs"}, names(entries))
	assert.Equal(t, filepath.Join("a", "b", "c", "d"), owner.GroupedName())
}

func TestPopulateGroupingSingleChild(t *testing.T) {
	tmpDir := t.TempDir()
	lib := filepath.Join(tmpDir, "parent", "lib")
	require.NoError(t, os.MkdirAll(lib, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "a.rs"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "b.rs"), []byte(""), 0644))

	e := New(Options{ShowDotfiles: true, GroupEmptyDirs: true}, nil)

	owner := newDirectoryNode(tmpDir, "parent")
	var entries []*Node
	require.NoError(t, e.Populate(&entries, owner.AbsolutePath, owner))

	require.NotNil(t, owner.GroupNext)
	assert.Equal(t, "lib", owner.GroupNext.Name)
	assert.ElementsMatch(t, []string{"a.rs", "b.rs"}, names(entries))
}

func TestPopulateGroupingThroughSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	real := filepath.Join(tmpDir, "real")
	require.NoError(t, os.MkdirAll(real, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "data.txt"), []byte(""), 0644))

	parent := filepath.Join(tmpDir, "parent")
	require.NoError(t, os.MkdirAll(parent, 0755))
	require.NoError(t, os.Symlink(real, filepath.Join(parent, "link")))

	e := New(Options{ShowDotfiles: true, GroupEmptyDirs: true}, nil)

	owner := newDirectoryNode(tmpDir, "parent")
	var entries []*Node
	require.NoError(t, e.Populate(&entries, owner.AbsolutePath, owner))

	require.NotNil(t, owner.GroupNext)
	assert.Equal(t, KindSymlink, owner.GroupNext.Kind)
	assert.True(t, owner.GroupNext.LinkDir)
	assert.Equal(t, []string{"data.txt"}, names(entries))
}

func TestPopulateGroupingDisabled(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "parent", "only"), 0755))

	e := New(Options{ShowDotfiles: true, GroupEmptyDirs: false}, nil)

	owner := newDirectoryNode(tmpDir, "parent")
	var entries []*Node
	require.NoError(t, e.Populate(&entries, owner.AbsolutePath, owner))

	assert.Nil(t, owner.GroupNext)
	assert.Equal(t, []string{"only"}, names(entries))
}

func TestPopulateGroupingNeedsOwner(t *testing.T) {
	// The top-level listing has no owning row to thread a chain onto.
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "only"), 0755))

	e := New(Options{ShowDotfiles: true, GroupEmptyDirs: true}, nil)

	var entries []*Node
	require.NoError(t, e.Populate(&entries, tmpDir, nil))

	assert.Equal(t, []string{"only"}, names(entries))
}

func TestPopulateInvokesDecorator(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "x.txt"), []byte(""), 0644))

	var gotDir string
	var gotNames []string
	e := New(Options{ShowDotfiles: true}, func(entries []*Node, dir string) {
		gotDir = dir
		gotNames = names(entries)
		for _, n := range entries {
			n.Decoration = "M"
		}
	})

	var entries []*Node
	require.NoError(t, e.Populate(&entries, tmpDir, nil))

	assert.Equal(t, tmpDir, gotDir)
	assert.Equal(t, []string{"x.txt"}, gotNames)
	assert.Equal(t, "M", entries[0].Decoration)
}
