package git

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avitaltamir/arbor/internal/explorer"
)

func fileNode(workDir, name string) *explorer.Node {
	return &explorer.Node{
		Kind:         explorer.KindFile,
		Name:         name,
		AbsolutePath: filepath.Join(workDir, name),
	}
}

func dirNode(workDir, name string) *explorer.Node {
	return &explorer.Node{
		Kind:         explorer.KindDirectory,
		Name:         name,
		AbsolutePath: filepath.Join(workDir, name),
	}
}

func TestDecorateAnnotatesWithoutReordering(t *testing.T) {
	workDir := "/repo"
	status := NewStatus()
	status.Files["main.go"] = FileStatus{Path: "main.go", Staging: StatusUnmodified, Worktree: StatusModified}
	status.Files[filepath.Join("src", "lib.go")] = FileStatus{Path: "src/lib.go", Staging: StatusUnmodified, Worktree: StatusModified}

	d := NewDecorator(workDir)
	d.SetStatus(status)

	entries := []*explorer.Node{
		dirNode(workDir, "src"),
		dirNode(workDir, "docs"),
		fileNode(workDir, "main.go"),
		fileNode(workDir, "README.md"),
	}
	d.Decorate(entries, workDir)

	assert.Equal(t, []string{"src", "docs", "main.go", "README.md"}, []string{
		entries[0].Name, entries[1].Name, entries[2].Name, entries[3].Name,
	})
	assert.Equal(t, "●", entries[0].Decoration, "directory rolls up descendant changes")
	assert.Equal(t, "", entries[1].Decoration)
	assert.Equal(t, "M", entries[2].Decoration)
	assert.Equal(t, "", entries[3].Decoration)
}

func TestDecorateWithoutStatus(t *testing.T) {
	d := NewDecorator("/repo")

	entries := []*explorer.Node{fileNode("/repo", "main.go")}
	entries[0].Decoration = "stale"
	d.Decorate(entries, "/repo")

	assert.Equal(t, "", entries[0].Decoration, "decoration is cleared when no status is known")
}

func TestDecorateGroupedRowUsesChainTail(t *testing.T) {
	workDir := "/repo"
	status := NewStatus()
	status.Files[filepath.Join("a", "b", "leaf.go")] = FileStatus{
		Path: "a/b/leaf.go", Staging: StatusUnmodified, Worktree: StatusModified,
	}

	d := NewDecorator(workDir)
	d.SetStatus(status)

	tail := &explorer.Node{
		Kind:         explorer.KindDirectory,
		Name:         "b",
		AbsolutePath: filepath.Join(workDir, "a", "b"),
	}
	row := dirNode(workDir, "a")
	row.GroupNext = tail

	d.Decorate([]*explorer.Node{row}, workDir)

	assert.Equal(t, "●", row.Decoration)
}

func TestDecorateOutsideWorkDir(t *testing.T) {
	d := NewDecorator("/repo")
	d.SetStatus(NewStatus())

	n := fileNode("/elsewhere", "main.go")
	d.Decorate([]*explorer.Node{n}, "/elsewhere")

	assert.Equal(t, "", n.Decoration)
}
