// Package git provides access to git revisions via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.ReferenceFetcher = (*Fetcher)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// TopLevel returns the root of the work tree holding dir.
func (r *Runner) TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := r.run(ctx, "-C", dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Show returns the content of path at rev. An empty rev reads the index.
// path is relative to repoPath.
func (r *Runner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	return r.run(ctx, "-C", repoPath, "show", rev+":"+filepath.ToSlash(path))
}

// Diff returns the unified diff of path in repoPath against HEAD.
func (r *Runner) Diff(ctx context.Context, repoPath, path string) (string, error) {
	return r.run(ctx, "-C", repoPath, "diff", "HEAD", "--", filepath.ToSlash(path))
}

func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &Error{Args: args[2:], Stderr: strings.TrimSpace(string(exitErr.Stderr))}
		}
		return "", fmt.Errorf("git %s failed: %w", args[2], err)
	}
	return string(output), nil
}

// Error is a git command that exited with a non-zero status.
type Error struct {
	Args   []string
	Stderr string
}

func (e *Error) Error() string {
	return fmt.Sprintf("git %s failed: %s", e.Args[0], e.Stderr)
}

// missing reports whether stderr says the object does not exist.
func (e *Error) missing() bool {
	for _, s := range []string{"does not exist", "exists on disk, but not in", "not a git repository", "invalid object name", "bad revision"} {
		if strings.Contains(e.Stderr, s) {
			return true
		}
	}
	return false
}

// Fetcher returns the content of a file at a fixed revision.
type Fetcher struct {
	runner *Runner
	rev    string
}

// NewHeadFetcher returns a Fetcher reading the HEAD revision.
func NewHeadFetcher(runner *Runner) *Fetcher {
	return &Fetcher{runner: runner, rev: "HEAD"}
}

// NewIndexFetcher returns a Fetcher reading the staged revision.
func NewIndexFetcher(runner *Runner) *Fetcher {
	return &Fetcher{runner: runner}
}

// Fetch returns the content of path at the fetcher's revision. It returns
// diffpane.ErrNoReference when path is outside a repository or not tracked.
func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	root, err := f.runner.TopLevel(ctx, filepath.Dir(abs))
	if err != nil {
		return nil, f.wrap(path, err)
	}
	// The work tree root may be reported with symlinks resolved.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, fmt.Errorf("resolving %s in %s: %w", path, root, err)
	}

	content, err := f.runner.Show(ctx, root, f.rev, rel)
	if err != nil {
		return nil, f.wrap(path, err)
	}
	return []byte(content), nil
}

func (f *Fetcher) wrap(path string, err error) error {
	var gitErr *Error
	if errors.As(err, &gitErr) && gitErr.missing() {
		return fmt.Errorf("%s: %w: %w", path, diffpane.ErrNoReference, err)
	}
	return fmt.Errorf("fetching %s: %w", path, err)
}
