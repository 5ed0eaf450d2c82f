package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ShellProvider implements Provider using shell git commands.
type ShellProvider struct {
	workDir string
	mu      sync.Mutex // Prevents concurrent git operations
}

// NewShellProvider creates a new shell-based git provider.
func NewShellProvider(workDir string) *ShellProvider {
	return &ShellProvider{workDir: workDir}
}

// IsRepo checks if the working directory is a git repository.
func (p *ShellProvider) IsRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = p.workDir
	err := cmd.Run()
	return err == nil
}

// GetBranch returns the current branch name.
func (p *ShellProvider) GetBranch(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.getBranchInternal(ctx)
}

// getBranchInternal returns branch without locking (for internal use)
func (p *ShellProvider) getBranchInternal(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "--no-optional-locks", "branch", "--show-current")
	cmd.Dir = p.workDir
	out, err := cmd.Output()
	if err != nil {
		// Try getting HEAD ref for detached state
		cmd = exec.CommandContext(ctx, "git", "--no-optional-locks", "rev-parse", "--short", "HEAD")
		cmd.Dir = p.workDir
		out, err = cmd.Output()
		if err != nil {
			return "", err
		}
		return "(" + strings.TrimSpace(string(out)) + ")", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// GetStatus returns the status of files in the repository.
func (p *ShellProvider) GetStatus(ctx context.Context) (*Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := NewStatus()

	// Get branch (use internal version since we already hold the lock)
	branch, err := p.getBranchInternal(ctx)
	if err == nil {
		status.Branch = branch
	}

	// Use --no-optional-locks to avoid taking index.lock for a
	// read-only operation.
	cmd := exec.CommandContext(ctx, "git", "--no-optional-locks", "status", "--porcelain=v1", "-uall")
	cmd.Dir = p.workDir
	out, err := cmd.Output()
	if err != nil {
		return status, err
	}

	parsePorcelain(status, string(out))

	// Get ahead/behind info
	cmd = exec.CommandContext(ctx, "git", "--no-optional-locks", "rev-list", "--left-right", "--count", "@{upstream}...HEAD")
	cmd.Dir = p.workDir
	out, err = cmd.Output()
	if err == nil {
		parts := strings.Fields(strings.TrimSpace(string(out)))
		if len(parts) == 2 {
			status.Behind = parseIntSafe(parts[0])
			status.Ahead = parseIntSafe(parts[1])
		}
	}

	return status, nil
}

// parsePorcelain fills status from `git status --porcelain=v1` output.
func parsePorcelain(status *Status, out string) {
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 3 {
			continue
		}

		staging := StatusCode(line[0])
		worktree := StatusCode(line[1])
		path := strings.TrimSpace(line[3:])

		// Handle renamed files (format: "R  old -> new")
		if strings.Contains(path, " -> ") {
			parts := strings.Split(path, " -> ")
			if len(parts) == 2 {
				path = parts[1]
			}
		}

		if !filepath.IsAbs(path) {
			path = filepath.Clean(path)
		}

		fs := FileStatus{
			Path:     path,
			Staging:  staging,
			Worktree: worktree,
		}
		status.Files[path] = fs

		if fs.HasChanges() {
			status.IsDirty = true
		}
	}
}

func parseIntSafe(s string) int {
	var n int
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
		}
	}
	return n
}
