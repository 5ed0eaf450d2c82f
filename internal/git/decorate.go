package git

import (
	"path/filepath"
	"strings"

	"github.com/avitaltamir/arbor/internal/explorer"
)

// Decorator maps repository status onto explorer entries. It satisfies
// the explorer's decoration hook contract: it fills Node.Decoration and
// never reorders, adds, or removes entries. The current status is
// swapped in whole by the app when a fresh `git status` lands.
type Decorator struct {
	workDir string
	status  *Status
}

// NewDecorator creates a decorator for the repository at workDir.
func NewDecorator(workDir string) *Decorator {
	return &Decorator{workDir: workDir}
}

// SetStatus replaces the status snapshot used for decoration.
func (d *Decorator) SetStatus(status *Status) {
	d.status = status
}

// Decorate annotates each entry with its status badge. Files get their
// porcelain code; a directory (or a grouped chain of them) gets a dot
// when anything beneath it changed.
func (d *Decorator) Decorate(entries []*explorer.Node, dir string) {
	for _, n := range entries {
		n.Decoration = d.badgeFor(n)
	}
}

func (d *Decorator) badgeFor(n *explorer.Node) string {
	if d.status == nil {
		return ""
	}

	// A grouped row stands in for the chain's tail; decorate based on
	// the path that actually holds the children.
	path := n.GroupTail().AbsolutePath

	rel, err := filepath.Rel(d.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}

	if fs, ok := d.status.Files[rel]; ok {
		return fs.Badge()
	}

	if n.Navigable() {
		prefix := rel + string(filepath.Separator)
		for p, fs := range d.status.Files {
			if strings.HasPrefix(p, prefix) && fs.HasChanges() {
				return "●"
			}
		}
	}
	return ""
}
