package explorer

import (
	"os"
	"path/filepath"
)

// shouldGroup reports whether a directory's entire visible content is a
// single navigable subdirectory: exactly one directory and nothing
// else, or exactly one symlink whose target resolves to a directory.
// Such a directory is visual noise on its own row and can be threaded
// onto its parent's row.
func shouldGroup(dirPath string, dirs, links, files []string) bool {
	if len(dirs) == 1 && len(links) == 0 && len(files) == 0 {
		return true
	}

	if len(dirs) == 0 && len(links) == 1 && len(files) == 0 {
		target, err := filepath.EvalSymlinks(filepath.Join(dirPath, links[0]))
		if err != nil {
			return false
		}
		info, err := os.Stat(target)
		return err == nil && info.IsDir()
	}

	return false
}

// populateGrouped links the sole child onto owner.GroupNext and
// recurses the population into the same entries list, continuing the
// chain until a directory with real content is reached. Returns false
// when the child fails its gate, in which case the caller falls back to
// normal per-entry handling.
func (e *Explorer) populateGrouped(entries *[]*Node, dirPath string, owner *Node, dirs, links []string) bool {
	var child *Node
	if len(dirs) == 1 {
		child = newDirectoryNode(dirPath, dirs[0])
	} else {
		child = newSymlinkNode(dirPath, links[0])
		if child.LinkTarget == "" {
			return false
		}
	}

	if !isReadable(child.AbsolutePath) {
		return false
	}

	owner.GroupNext = child
	// The child just passed the readability gate, so the recursive scan
	// cannot fail with permission denied here.
	_ = e.Populate(entries, child.AbsolutePath, child)
	return true
}
