package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/arbor/internal/components/filetree"
	"github.com/avitaltamir/arbor/internal/components/preview"
	"github.com/avitaltamir/arbor/internal/config"
	"github.com/avitaltamir/arbor/internal/explorer"
	"github.com/avitaltamir/arbor/internal/git"
)

func newTestApp(t *testing.T) Model {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte(""), 0o644))

	cfg := config.Default()
	cfg.GitStatus = false

	m := New(root, cfg, explorer.Options{GroupEmptyDirs: true})
	t.Cleanup(m.Close)
	return m
}

func TestNew(t *testing.T) {
	m := newTestApp(t)

	assert.Equal(t, PanelFileTree, m.Focus())
	assert.True(t, m.fileTree.Focused())
	assert.NotEmpty(t, m.keys.Quit.Keys())
}

func TestPanelIDString(t *testing.T) {
	tests := []struct {
		panel    PanelID
		expected string
	}{
		{PanelFileTree, "Tree"},
		{PanelPreview, "Preview"},
		{PanelID(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.panel.String())
		})
	}
}

func TestModelUpdate(t *testing.T) {
	t.Run("WindowSizeMsg sets dimensions", func(t *testing.T) {
		m := newTestApp(t)

		newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		assert.Equal(t, 100, newModel.(Model).width)
		assert.Equal(t, 40, newModel.(Model).height)
		assert.True(t, newModel.(Model).ready)
	})

	t.Run("Quit key quits", func(t *testing.T) {
		m := newTestApp(t)
		newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
		assert.NotNil(t, cmd)
	})

	t.Run("FocusMsg sets focus", func(t *testing.T) {
		m := newTestApp(t)

		newModel, _ := m.Update(FocusMsg{Target: PanelPreview})
		model := newModel.(Model)

		assert.Equal(t, PanelPreview, model.Focus())
		assert.Equal(t, PanelFileTree, model.prevFocus)
	})

	t.Run("SelectMsg loads file into preview", func(t *testing.T) {
		m := newTestApp(t)
		path := filepath.Join(m.rootPath, "main.go")

		_, cmd := m.Update(filetree.SelectMsg{Path: path})
		require.NotNil(t, cmd)

		msg := cmd()
		loaded, ok := msg.(preview.FileLoadedMsg)
		require.True(t, ok)
		assert.Equal(t, path, loaded.Path)
		assert.Equal(t, "package main\n", loaded.Content)
	})

	t.Run("ScanErrorMsg surfaces in status bar", func(t *testing.T) {
		m := newTestApp(t)
		newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		newModel, _ = newModel.Update(filetree.ScanErrorMsg{Err: errors.New("permission denied")})

		assert.Contains(t, newModel.(Model).View(), "permission denied")
	})

	t.Run("ToggleDotfilesMsg rebuilds the tree", func(t *testing.T) {
		m := newTestApp(t)
		for _, n := range m.fileTree.Entries() {
			assert.NotEqual(t, ".hidden", n.Name)
		}

		newModel, _ := m.Update(filetree.ToggleDotfilesMsg{})
		model := newModel.(Model)

		names := []string{}
		for _, n := range model.fileTree.Entries() {
			names = append(names, n.Name)
		}
		assert.Contains(t, names, ".hidden")
	})
}

func TestModelView(t *testing.T) {
	t.Run("returns loading when not ready", func(t *testing.T) {
		m := newTestApp(t)
		assert.Contains(t, m.View(), "Initializing")
	})

	t.Run("renders panels when ready", func(t *testing.T) {
		m := newTestApp(t)
		newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		view := newModel.(Model).View()

		assert.Contains(t, view, "TREE")
		assert.Contains(t, view, "PREVIEW")
		assert.Contains(t, view, Version)
	})
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.Quit.Keys())
	assert.NotEmpty(t, km.Help.Keys())
	assert.NotEmpty(t, km.FocusTree.Keys())
	assert.NotEmpty(t, km.FocusView.Keys())
	assert.NotEmpty(t, km.CycleTheme.Keys())
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	t.Run("ShortHelp returns bindings", func(t *testing.T) {
		assert.NotEmpty(t, km.ShortHelp())
	})

	t.Run("FullHelp returns binding groups", func(t *testing.T) {
		full := km.FullHelp()
		assert.Greater(t, len(full), 1)
	})
}

func TestSetFocus(t *testing.T) {
	m := newTestApp(t)
	assert.Equal(t, PanelFileTree, m.focus)

	m = m.setFocus(PanelPreview)
	assert.Equal(t, PanelPreview, m.focus)
	assert.False(t, m.fileTree.Focused())
	assert.True(t, m.preview.Focused())

	m = m.setFocus(PanelFileTree)
	assert.Equal(t, PanelFileTree, m.focus)
	assert.True(t, m.fileTree.Focused())
	assert.False(t, m.preview.Focused())
}

func TestMouseClickSetsFocus(t *testing.T) {
	m := newTestApp(t)

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updatedModel.(Model)
	assert.Equal(t, PanelFileTree, m.focus)

	// Click on the preview panel (right side)
	mouseMsg := tea.MouseMsg{
		X:      m.layout.LeftWidth + 10,
		Y:      5,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}

	updatedModel, _ = m.Update(mouseMsg)
	m = updatedModel.(Model)

	assert.Equal(t, PanelPreview, m.focus)
	assert.True(t, m.preview.Focused())
	assert.False(t, m.fileTree.Focused())
}

func TestPanelAtPosition(t *testing.T) {
	m := newTestApp(t)

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updatedModel.(Model)

	tests := []struct {
		name     string
		x, y     int
		expected PanelID
	}{
		{"left panel top", 5, 5, PanelFileTree},
		{"left panel near edge", m.layout.LeftWidth - 1, 5, PanelFileTree},
		{"right panel start", m.layout.LeftWidth, 5, PanelPreview},
		{"right panel middle", 80, 5, PanelPreview},
		{"status bar area", 50, m.layout.MainHeight, PanelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.panelAtPosition(tt.x, tt.y), "panelAtPosition(%d, %d)", tt.x, tt.y)
		})
	}
}

func TestGitStatusEqual(t *testing.T) {
	a := git.NewStatus()
	a.Branch = "main"
	a.Files["x.go"] = git.FileStatus{Path: "x.go", Worktree: git.StatusModified}

	b := git.NewStatus()
	b.Branch = "main"
	b.Files["x.go"] = git.FileStatus{Path: "x.go", Worktree: git.StatusModified}

	assert.True(t, gitStatusEqual(a, b))
	assert.True(t, gitStatusEqual(nil, nil))
	assert.False(t, gitStatusEqual(a, nil))

	b.Files["y.go"] = git.FileStatus{Path: "y.go", Worktree: git.StatusUntracked}
	assert.False(t, gitStatusEqual(a, b))
}
