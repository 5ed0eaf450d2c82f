package explorer

import (
	"os"
	"path/filepath"
	"strings"
)

// classify builds the node for one scanned entry, performing the
// minimal filesystem reads each variant needs. Metadata failures are
// non-fatal and degrade to zero values; an unresolvable symlink comes
// back with an empty LinkTarget and is excluded by the caller's gate.
func classify(parent, name string, kind Kind) *Node {
	switch kind {
	case KindDirectory:
		return newDirectoryNode(parent, name)
	case KindSymlink:
		return newSymlinkNode(parent, name)
	case KindFile:
		return newFileNode(parent, name)
	}
	return nil
}

func newDirectoryNode(parent, name string) *Node {
	n := newNode(KindDirectory, parent, name)

	// Permission to list the parent does not imply permission to stat
	// the child; a failed stat leaves LastModified at zero.
	if info, err := os.Stat(n.AbsolutePath); err == nil {
		n.LastModified = info.ModTime().Unix()
	}
	n.HasChildren = hasEntries(n.AbsolutePath)
	return n
}

func newFileNode(parent, name string) *Node {
	n := newNode(KindFile, parent, name)

	if info, err := os.Stat(n.AbsolutePath); err == nil {
		n.Executable = info.Mode().Perm()&0111 != 0
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		n.Extension = name[i+1:]
	}
	return n
}

func newSymlinkNode(parent, name string) *Node {
	n := newNode(KindSymlink, parent, name)

	// Resolution can fail for valid links (dangling targets, loops,
	// permission on an intermediate component). That is not an error;
	// the node simply carries no target and cannot join the tree.
	target, err := filepath.EvalSymlinks(n.AbsolutePath)
	if err != nil {
		return n
	}
	n.LinkTarget = target

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		n.LinkDir = true
	}
	return n
}
