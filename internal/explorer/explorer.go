// Package explorer maintains an in-memory, lazily-expanded tree that
// mirrors a directory hierarchy on disk. Populate expands a directory
// into child nodes; Refresh re-synchronizes an already-expanded entry
// list against the current on-disk state without discarding unrelated
// subtree state (open flags, cached children, node identity).
//
// All filesystem access is synchronous and runs on the caller's
// goroutine. Callers must not run overlapping Populate/Refresh calls
// against the same entries slice.
package explorer

// Options is the immutable configuration threaded through Populate and
// Refresh calls.
type Options struct {
	// ShowDotfiles includes names starting with "." in the tree.
	ShowDotfiles bool

	// RespectGitignore feeds GitignoreContent into the ignore filter.
	RespectGitignore bool

	// GitignoreContent is the raw newline-separated pattern content
	// supplied by the caller, typically the root .gitignore file.
	GitignoreContent string

	// Ignore lists literal names or "*.ext" wildcards to exclude.
	Ignore []string

	// GroupEmptyDirs collapses chains of single-child directories into
	// one visual row.
	GroupEmptyDirs bool
}

// DecorateFunc annotates a finished entry list for a directory. The
// hook may fill Node.Decoration but must never reorder, add, or remove
// entries.
type DecorateFunc func(entries []*Node, dir string)

// Explorer builds and refreshes directory entry lists.
type Explorer struct {
	opts     Options
	filter   *IgnoreFilter
	decorate DecorateFunc
}

// New creates an Explorer. A nil decorate disables decoration.
func New(opts Options, decorate DecorateFunc) *Explorer {
	return &Explorer{
		opts:     opts,
		filter:   NewIgnoreFilter(opts),
		decorate: decorate,
	}
}

// Options returns the configuration the explorer was built with.
func (e *Explorer) Options() Options {
	return e.opts
}

// partition splits a scan into dir, symlink, and file names, dropping
// ignored names before any node is created. Relative order within each
// category is whatever the scan yielded.
func (e *Explorer) partition(ents []dirEntry) (dirs, links, files []string) {
	for _, de := range ents {
		if e.filter.ShouldIgnore(de.name) {
			continue
		}
		switch de.kind {
		case KindDirectory:
			dirs = append(dirs, de.name)
		case KindSymlink:
			links = append(links, de.name)
		case KindFile:
			files = append(files, de.name)
		}
	}
	return dirs, links, files
}
