// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitfmt - Commitfmt is a standalone commit message policy checker for pull requests.
It validates commit titles, body line lengths, the title/body separator and sign-off trailers, and reports every violation in CI logs.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package vcs is the narrow read-only view of version control that commitfmt needs.
package vcs

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendExec  = "exec"
	BackendGoGit = "gogit"
)

// Repository provides the four history operations the validator consumes.
// Implementations must not modify the working tree or local branches.
type Repository interface {
	// Fetch updates the remote-tracking ref for branch from remote.
	Fetch(ctx context.Context, remote, branch string) error

	// ListRange returns abbreviated ids of the non-merge commits reachable
	// from to but not from from, in history listing order.
	ListRange(ctx context.Context, from, to string) ([]string, error)

	// AuthorEmail returns the author email of a commit.
	AuthorEmail(ctx context.Context, sha string) (string, error)

	// Message returns the raw commit message, subject and body.
	Message(ctx context.Context, sha string) (string, error)
}

// Open returns the Repository implementation for backend rooted at path.
func Open(backend, path string) (Repository, error) {
	switch backend {
	case "", BackendExec:
		return NewGit(path), nil
	case BackendGoGit:
		return OpenGoGit(path)
	default:
		return nil, fmt.Errorf("unknown vcs backend: %s (must be '%s' or '%s')", backend, BackendExec, BackendGoGit)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendExec, BackendGoGit}
}
