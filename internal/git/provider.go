package git

import "context"

// Provider defines the read-only git operations the explorer needs.
type Provider interface {
	// GetBranch returns the current branch name
	GetBranch(ctx context.Context) (string, error)

	// GetStatus returns the status of files in the repository
	GetStatus(ctx context.Context) (*Status, error)

	// IsRepo checks if the working directory is a git repository
	IsRepo() bool
}

// Status represents the overall repository status.
type Status struct {
	Branch  string
	IsDirty bool
	Ahead   int
	Behind  int
	Files   map[string]FileStatus
}

// FileStatus represents the status of a single file.
type FileStatus struct {
	Path     string
	Staging  StatusCode
	Worktree StatusCode
}

// StatusCode represents a git status code.
type StatusCode rune

const (
	StatusUnmodified StatusCode = ' '
	StatusModified   StatusCode = 'M'
	StatusAdded      StatusCode = 'A'
	StatusDeleted    StatusCode = 'D'
	StatusRenamed    StatusCode = 'R'
	StatusCopied     StatusCode = 'C'
	StatusUnmerged   StatusCode = 'U'
	StatusUntracked  StatusCode = '?'
	StatusIgnored    StatusCode = '!'
)

// String returns the single-character representation.
func (s StatusCode) String() string {
	return string(s)
}

// HasChanges returns true if the file has any changes.
func (f FileStatus) HasChanges() bool {
	return f.Staging != StatusUnmodified || f.Worktree != StatusUnmodified
}

// IsStaged returns true if the file has been staged.
func (f FileStatus) IsStaged() bool {
	return f.Staging != StatusUnmodified && f.Staging != StatusUntracked
}

// Badge returns the short indicator drawn next to a tree entry. The
// worktree state wins over the index state since it is what the user
// still has to deal with.
func (f FileStatus) Badge() string {
	switch f.Worktree {
	case StatusModified:
		return "M"
	case StatusDeleted:
		return "D"
	case StatusUntracked:
		return "?"
	case StatusUnmerged:
		return "!"
	}
	switch f.Staging {
	case StatusModified, StatusRenamed, StatusCopied:
		return "M"
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusUntracked:
		return "?"
	}
	return ""
}

// NewStatus creates a new Status with initialized maps.
func NewStatus() *Status {
	return &Status{
		Files: make(map[string]FileStatus),
	}
}
