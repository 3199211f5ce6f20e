package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git shells out to the git binary.
type Git struct {
	repoRoot string
}

// NewGit creates a Git for the repository at repoRoot. An empty root means the
// current working directory.
func NewGit(repoRoot string) *Git {
	return &Git{repoRoot: repoRoot}
}

func (g *Git) Fetch(ctx context.Context, remote, branch string) error {
	_, err := g.run(ctx, "fetch", remote, branch)
	return err
}

func (g *Git) ListRange(ctx context.Context, from, to string) ([]string, error) {
	out, err := g.run(ctx, "log", "--no-merges", "--pretty=%h", "--no-decorate", from+".."+to)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

func (g *Git) AuthorEmail(ctx context.Context, sha string) (string, error) {
	out, err := g.run(ctx, "show", "-s", "--format=%ae", sha)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) Message(ctx context.Context, sha string) (string, error) {
	return g.run(ctx, "show", "--pretty=format:%B", "-s", sha)
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if stderr != "" {
				return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, stderr)
			}
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return string(out), nil
}
