package vcs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// abbrevLen matches git's default core.abbrev for small repositories.
const abbrevLen = 7

// GoGit implements Repository in-process with go-git, for runners that ship
// without a git binary.
type GoGit struct {
	repo *git.Repository

	mu     sync.Mutex
	hashes map[string]plumbing.Hash // abbreviated id -> full hash
}

// OpenGoGit opens the repository containing path.
func OpenGoGit(path string) (*GoGit, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", path, err)
	}
	return &GoGit{repo: repo, hashes: map[string]plumbing.Hash{}}, nil
}

func (g *GoGit) Fetch(ctx context.Context, remote, branch string) error {
	refspec := config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
	err := g.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refspec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch %s %s failed: %w", remote, branch, err)
	}
	return nil
}

func (g *GoGit) ListRange(ctx context.Context, from, to string) ([]string, error) {
	fromHash, err := g.repo.ResolveRevision(plumbing.Revision(from))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", from, err)
	}
	toHash, err := g.repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", to, err)
	}

	excluded := map[plumbing.Hash]struct{}{}
	if err := g.walk(ctx, *fromHash, func(c *object.Commit) {
		excluded[c.Hash] = struct{}{}
	}); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var shas []string
	err = g.walk(ctx, *toHash, func(c *object.Commit) {
		if _, ok := excluded[c.Hash]; ok {
			return
		}
		if c.NumParents() > 1 {
			return
		}
		short := c.Hash.String()[:abbrevLen]
		g.hashes[short] = c.Hash
		shas = append(shas, short)
	})
	if err != nil {
		return nil, err
	}
	return shas, nil
}

func (g *GoGit) AuthorEmail(_ context.Context, sha string) (string, error) {
	c, err := g.commit(sha)
	if err != nil {
		return "", err
	}
	return c.Author.Email, nil
}

func (g *GoGit) Message(_ context.Context, sha string) (string, error) {
	c, err := g.commit(sha)
	if err != nil {
		return "", err
	}
	return c.Message, nil
}

func (g *GoGit) walk(ctx context.Context, from plumbing.Hash, visit func(*object.Commit)) error {
	iter, err := g.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("walking history from %s: %w", from, err)
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(c)
		return nil
	})
}

func (g *GoGit) commit(sha string) (*object.Commit, error) {
	g.mu.Lock()
	hash, ok := g.hashes[sha]
	g.mu.Unlock()

	if !ok {
		resolved, err := g.repo.ResolveRevision(plumbing.Revision(sha))
		if err != nil {
			return nil, fmt.Errorf("resolving commit %s: %w", sha, err)
		}
		hash = *resolved
	}

	c, err := g.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", sha, err)
	}
	return c, nil
}
