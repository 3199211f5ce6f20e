// Package vcstest provides a testify mock of vcs.Repository.
package vcstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bartekus/commitfmt/internal/vcs"
)

// Repo is an in-memory vcs.Repository driven by testify expectations.
type Repo struct{ mock.Mock }

var _ vcs.Repository = (*Repo)(nil)

func (m *Repo) Fetch(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *Repo) ListRange(ctx context.Context, from, to string) ([]string, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *Repo) AuthorEmail(ctx context.Context, sha string) (string, error) {
	args := m.Called(ctx, sha)
	return args.String(0), args.Error(1)
}

func (m *Repo) Message(ctx context.Context, sha string) (string, error) {
	args := m.Called(ctx, sha)
	return args.String(0), args.Error(1)
}

// AddCommit registers the author and message lookups for sha. The lookups are
// optional so fail-fast runs that stop early still satisfy AssertExpectations.
func (m *Repo) AddCommit(sha, author, message string) {
	m.On("AuthorEmail", mock.Anything, sha).Return(author, nil).Maybe()
	m.On("Message", mock.Anything, sha).Return(message, nil).Maybe()
}
