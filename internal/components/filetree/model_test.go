package filetree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/arbor/internal/explorer"
)

// writeTree creates a small hierarchy:
//
//	root/
//	  src/
//	    main.go
//	  vendor/lib/   (single-child chain)
//	    util.go
//	  README.md
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "lib", "util.go"), []byte("package lib\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# hi\n"), 0o644))
	return root
}

func newTestTree(t *testing.T, opts explorer.Options) (Model, string) {
	t.Helper()
	root := writeTree(t)
	m := New(explorer.New(opts, nil), root)
	m = m.Focus()
	m = m.SetSize(40, 20)
	return m, root
}

func visibleNames(m Model) []string {
	names := make([]string, 0, len(m.visible))
	for _, r := range m.visible {
		names = append(names, r.node.Name)
	}
	return names
}

func TestNewPopulatesRoot(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})

	assert.Equal(t, []string{"src", "vendor", "README.md"}, visibleNames(m))
	assert.Empty(t, m.ScanError())
}

func TestGroupedRowRendering(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{GroupEmptyDirs: true})

	// Expanding vendor collapses the vendor/lib chain into one row
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "vendor", m.visible[1].node.Name)
	assert.NotNil(t, m.visible[1].node.GroupNext)
	assert.Contains(t, m.View(), "vendor"+string(filepath.Separator)+"lib")
	assert.Contains(t, visibleNames(m), "util.go")
}

func TestExpandAndCollapse(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})

	// Expand src
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"src", "main.go", "vendor", "README.md"}, visibleNames(m))

	// Collapse it again
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"src", "vendor", "README.md"}, visibleNames(m))
}

func TestSelectFileEmitsMessage(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	// Move cursor to README.md (last row)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	sel, ok := msg.(SelectMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "README.md"), sel.Path)
}

func TestDotfilesKeyEmitsToggle(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}})
	require.NotNil(t, cmd)
	_, ok := cmd().(ToggleDotfilesMsg)
	assert.True(t, ok)
}

func TestSetExplorerReloads(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(""), 0o644))

	m.SetExplorer(explorer.New(explorer.Options{ShowDotfiles: true}, nil))

	assert.Contains(t, visibleNames(m), ".env")
}

func TestSearchFiltersRows(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})

	// Expand src so main.go is cached, then filter
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.searchQuery = "main"
	m.rebuildVisible()

	assert.Equal(t, []string{"src", "main.go"}, visibleNames(m))
	assert.Equal(t, 1, m.matchCount)

	m.searchQuery = ""
	m.rebuildVisible()
	assert.Len(t, m.visible, 4)
}

func TestRefreshDirPicksUpChanges(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	require.NoError(t, os.WriteFile(filepath.Join(root, "Makefile"), []byte(""), 0o644))
	cmd := m.RefreshDir(root)
	assert.Nil(t, cmd)

	assert.Contains(t, visibleNames(m), "Makefile")
}

func TestRefreshDirOnFileRefreshesParent(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	// Expand src, then add a sibling of main.go and refresh by file path
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "extra.go"), []byte(""), 0o644))

	cmd := m.RefreshDir(filepath.Join(root, "src", "extra.go"))
	assert.Nil(t, cmd)
	assert.Contains(t, visibleNames(m), "extra.go")
}

func TestRefreshDirIgnoresUnexpanded(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	// src was never expanded; refreshing it is a no-op
	cmd := m.RefreshDir(filepath.Join(root, "src"))
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"src", "vendor", "README.md"}, visibleNames(m))
}

func TestRefreshDirInsideChainLink(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "a", "b", "deep.txt"), []byte(""), 0o644))

	m := New(explorer.New(explorer.Options{GroupEmptyDirs: true}, nil), root)
	m = m.Focus()
	m = m.SetSize(40, 20)

	// Expanding vendor forms the vendor/a/b chain
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	vendor := m.entries[0]
	require.Equal(t, "vendor", vendor.Name)
	require.NotNil(t, vendor.GroupNext)
	require.NotNil(t, vendor.GroupNext.GroupNext)

	// A file lands in the middle link; refreshing that directory must
	// reach the chain's owning row and sever at the changed link.
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "a", "side.txt"), []byte(""), 0o644))
	cmd := m.RefreshDir(filepath.Join(root, "vendor", "a"))
	assert.Nil(t, cmd)

	assert.Nil(t, vendor.GroupNext.GroupNext, "chain severed below the changed link")
	names := visibleNames(m)
	assert.Contains(t, names, "b")
	assert.Contains(t, names, "side.txt")
}

func TestRefreshPrunesRemovedDirState(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // expand src
	require.Contains(t, visibleNames(m), "main.go")
	require.Len(t, m.populated, 1)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "src")))
	cmd := m.RefreshDir(root)
	assert.Nil(t, cmd)

	assert.NotContains(t, visibleNames(m), "src")
	assert.Empty(t, m.populated, "bookkeeping for removed nodes is dropped")
}

func TestOpenStateSurvivesRefresh(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // expand src
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte(""), 0o644))

	cmd := m.RefreshDir(root)
	assert.Nil(t, cmd)

	names := visibleNames(m)
	assert.Contains(t, names, "main.go", "expanded subtree stays open across refresh")
	assert.Contains(t, names, "new.txt")
}

func TestCursorClamping(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, len(m.visible)-1, m.cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, len(m.visible)-1, m.cursor)
}

func TestSelectedPathUsesChainTail(t *testing.T) {
	m, root := newTestTree(t, explorer.Options{GroupEmptyDirs: true})

	// Expand vendor so the chain forms; the cursor stays on its row
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, filepath.Join(root, "vendor", "lib"), m.SelectedPath())
}

func TestTruncateToWidth(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "héllo", truncateToWidth("héllo", 10))
	})

	t.Run("cuts on rune boundaries", func(t *testing.T) {
		wide := strings.Repeat("日", 10)
		out := truncateToWidth(wide, 7)

		assert.True(t, utf8.ValidString(out))
		assert.LessOrEqual(t, lipgloss.Width(out), 7)
		assert.Greater(t, lipgloss.Width(out), 0)
	})
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m, _ := newTestTree(t, explorer.Options{})
	m = m.Blur()

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, visibleNames(m), visibleNames(m2))
}
