// Package gitrepo builds throwaway git repositories for tests.
package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Repo is a working repository on disk.
type Repo struct {
	t   *testing.T
	Dir string
}

// Init creates a repository in dir with main checked out and a test identity.
// The test is skipped when git is not installed.
func Init(t *testing.T, dir string) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	r := &Repo{t: t, Dir: dir}
	r.Git("init", "--quiet")
	r.Git("checkout", "--quiet", "-b", "main")
	r.Git("config", "user.email", "dev@example.com")
	r.Git("config", "user.name", "Dev")
	return r
}

// Git runs a git command in the repository and returns its output.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	args = append([]string{"-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
	return string(out)
}

// Commit records an empty commit with the given message and returns its
// abbreviated id.
func (r *Repo) Commit(message string) string {
	r.t.Helper()
	r.Git("commit", "--quiet", "--allow-empty", "-m", message)
	return r.head()
}

// CommitAs is Commit with a different author email.
func (r *Repo) CommitAs(email, message string) string {
	r.t.Helper()
	r.Git("-c", "user.email="+email, "commit", "--quiet", "--allow-empty", "-m", message)
	return r.head()
}

// Clone clones the repository into dst.
func (r *Repo) Clone(dst string) *Repo {
	r.t.Helper()
	r.Git("clone", "--quiet", r.Dir, dst)
	return &Repo{t: r.t, Dir: dst}
}

func (r *Repo) head() string {
	return strings.TrimSpace(r.Git("rev-parse", "--short", "HEAD"))
}

// PullRequest builds an upstream repository whose feature branch holds
// messages (one commit each, in order) on top of main, and returns a clone of
// it with origin pointing at the upstream. The ids of the feature commits are
// returned in commit order.
func PullRequest(t *testing.T, messages ...string) (*Repo, []string) {
	t.Helper()
	dir := t.TempDir()

	upstream := Init(t, filepath.Join(dir, "upstream"))
	upstream.Commit("Initial commit")
	upstream.Git("checkout", "--quiet", "-b", "feature")

	shas := make([]string, 0, len(messages))
	for _, msg := range messages {
		shas = append(shas, upstream.Commit(msg))
	}
	upstream.Git("checkout", "--quiet", "main")

	return upstream.Clone(filepath.Join(dir, "work")), shas
}
