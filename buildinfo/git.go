package buildinfo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultGitTimeout bounds a single revision lookup. The lookup should
// fail fast rather than block a status request indefinitely.
const DefaultGitTimeout = 5 * time.Second

// RevisionLookup resolves the revision identifier of the deployed source
// snapshot.
type RevisionLookup interface {
	Revision(ctx context.Context) (string, error)
}

// GitRevision resolves the revision by asking git for the current HEAD
// commit.
type GitRevision struct {
	// Dir is the repository directory. Empty means the working directory.
	Dir string

	// Timeout bounds the git invocation. Zero means DefaultGitTimeout.
	Timeout time.Duration
}

var _ RevisionLookup = GitRevision{}

func (g GitRevision) Revision(ctx context.Context) (string, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = g.Dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
