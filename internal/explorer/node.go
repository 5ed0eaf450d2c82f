package explorer

import (
	"path/filepath"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindDirectory Kind = iota
	KindSymlink
	KindFile
)

// String returns the kind name for debugging.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a single element of the tree: a directory, file, or symlink.
// Only the fields for the node's Kind are meaningful; every call site
// that cares about variant-specific data switches on Kind.
type Node struct {
	Kind         Kind
	Name         string
	AbsolutePath string

	// MatchName and MatchPath are case-folded copies of Name and
	// AbsolutePath, precomputed so an external matcher never has to
	// normalize per keystroke. They are derived at construction and
	// never mutated independently.
	MatchName string
	MatchPath string

	// Directory fields.
	LastModified int64 // Unix seconds; 0 when the stat failed
	HasChildren  bool
	Open         bool
	GroupNext    *Node
	Entries      []*Node

	// File fields.
	Executable bool
	Extension  string

	// Symlink fields. LinkTarget is the resolved absolute target path,
	// empty when resolution failed. A symlink whose target is a
	// directory is navigable and uses Open/Entries like a directory.
	LinkTarget string
	LinkDir    bool

	// Decoration is opaque to the tree; the decoration hook may fill
	// it with a status badge for the UI.
	Decoration string
}

func newNode(kind Kind, parent, name string) *Node {
	abs := filepath.Join(parent, name)
	return &Node{
		Kind:         kind,
		Name:         name,
		AbsolutePath: abs,
		MatchName:    strings.ToLower(name),
		MatchPath:    strings.ToLower(abs),
	}
}

// Navigable reports whether the node can own child entries: a directory
// or a symlink resolving to one.
func (n *Node) Navigable() bool {
	switch n.Kind {
	case KindDirectory:
		return true
	case KindSymlink:
		return n.LinkDir
	case KindFile:
		return false
	}
	return false
}

// GroupTail follows the GroupNext chain and returns its last node, which
// is the node whose scan actually produced the row's Entries. Returns
// the receiver when no chain exists.
func (n *Node) GroupTail() *Node {
	tail := n
	for tail.GroupNext != nil {
		tail = tail.GroupNext
	}
	return tail
}

// GroupedName returns the display name for the row: the names of the
// whole GroupNext chain joined by the path separator.
func (n *Node) GroupedName() string {
	if n.GroupNext == nil {
		return n.Name
	}
	parts := []string{n.Name}
	for next := n.GroupNext; next != nil; next = next.GroupNext {
		parts = append(parts, next.Name)
	}
	return strings.Join(parts, string(filepath.Separator))
}
