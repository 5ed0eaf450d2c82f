package explorer

import "fmt"

// Populate scans dirPath and appends its classified children to
// entries: directories first, then symlinks, then files, each category
// in scan order. Ignored names are dropped before classification.
// Unreadable directories and unresolvable symlinks are silently
// excluded. A scan failure is returned to the caller with entries
// untouched.
//
// When owner is non-nil and grouping is enabled, a directory whose
// visible content collapses to a single navigable child is threaded
// onto owner.GroupNext and the scan descends into it, filling the same
// entries list with the eventual real children.
func (e *Explorer) Populate(entries *[]*Node, dirPath string, owner *Node) error {
	ents, err := scanDir(dirPath)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dirPath, err)
	}

	dirs, links, files := e.partition(ents)

	if owner != nil && e.opts.GroupEmptyDirs && shouldGroup(dirPath, dirs, links, files) {
		if e.populateGrouped(entries, dirPath, owner, dirs, links) {
			return nil
		}
	}

	for _, name := range dirs {
		n := newDirectoryNode(dirPath, name)
		if !isReadable(n.AbsolutePath) {
			continue
		}
		*entries = append(*entries, n)
	}
	for _, name := range links {
		n := newSymlinkNode(dirPath, name)
		if n.LinkTarget == "" {
			continue
		}
		*entries = append(*entries, n)
	}
	for _, name := range files {
		*entries = append(*entries, newFileNode(dirPath, name))
	}

	if e.decorate != nil {
		e.decorate(*entries, dirPath)
	}
	return nil
}
