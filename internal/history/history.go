// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitfmt - Commitfmt is a standalone commit message policy checker for pull requests.
It validates commit titles, body line lengths, the title/body separator and sign-off trailers, and reports every violation in CI logs.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history resolves the commits under review and reads their metadata.
package history

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bartekus/commitfmt/internal/vcs"
)

// Commit is a single commit's metadata as seen by the rule checker.
type Commit struct {
	SHA         string
	AuthorEmail string
	// Lines is the raw message split on newlines. A trailing newline in the
	// message yields a trailing empty line.
	Lines []string
}

// Title returns the first message line.
func (c Commit) Title() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0]
}

// SplitMessage splits a raw commit message into lines without trimming.
func SplitMessage(msg string) []string {
	return strings.Split(msg, "\n")
}

// ConfigurationError reports that the base branch could not be fetched,
// which almost always means the remote or branch name is wrong.
type ConfigurationError struct {
	Remote string
	Branch string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("the name of the base branch %q or remote %q is invalid; see 'commitfmt check --help' for how REMOTE, GITHUB_HEAD_REF and BASE_BRANCH are resolved: %v",
		e.Branch, e.Remote, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Range names the refs that bound the commits under review.
type Range struct {
	Remote string
	// BaseBranch is the branch whose unique commits are checked. It is fetched
	// before listing.
	BaseBranch string
	// UpstreamBranch is the lower bound. It is not fetched.
	UpstreamBranch string
}

// From returns the lower bound ref.
func (r Range) From() string { return r.Remote + "/" + r.UpstreamBranch }

// To returns the upper bound ref.
func (r Range) To() string { return r.Remote + "/" + r.BaseBranch }

func (r Range) String() string { return r.From() + ".." + r.To() }

// Resolver computes the ordered list of commits to check.
type Resolver struct {
	repo vcs.Repository
	rng  Range
	log  *zap.SugaredLogger
}

// NewResolver creates a Resolver. A nil logger disables logging.
func NewResolver(repo vcs.Repository, rng Range, log *zap.SugaredLogger) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Resolver{repo: repo, rng: rng, log: log}
}

// Resolve fetches the base branch and lists the non-merge commits unique to it.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	r.log.Debugw("fetching base branch", "remote", r.rng.Remote, "branch", r.rng.BaseBranch)
	if err := r.repo.Fetch(ctx, r.rng.Remote, r.rng.BaseBranch); err != nil {
		return nil, &ConfigurationError{Remote: r.rng.Remote, Branch: r.rng.BaseBranch, Err: err}
	}

	shas, err := r.repo.ListRange(ctx, r.rng.From(), r.rng.To())
	if err != nil {
		return nil, fmt.Errorf("listing commits in %s: %w", r.rng, err)
	}
	r.log.Infow("resolved commit range", "range", r.rng.String(), "commits", len(shas))
	return shas, nil
}

// Inspector reads author and message for individual commits.
type Inspector struct {
	repo vcs.Repository
}

func NewInspector(repo vcs.Repository) *Inspector {
	return &Inspector{repo: repo}
}

// Inspect returns the commit's author email and message lines.
func (i *Inspector) Inspect(ctx context.Context, sha string) (Commit, error) {
	email, err := i.repo.AuthorEmail(ctx, sha)
	if err != nil {
		return Commit{}, fmt.Errorf("reading author of %s: %w", sha, err)
	}
	msg, err := i.repo.Message(ctx, sha)
	if err != nil {
		return Commit{}, fmt.Errorf("reading message of %s: %w", sha, err)
	}
	return Commit{
		SHA:         sha,
		AuthorEmail: strings.TrimSpace(email),
		Lines:       SplitMessage(msg),
	}, nil
}
