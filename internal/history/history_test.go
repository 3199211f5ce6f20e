package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitfmt/internal/vcs/vcstest"
)

var defaultRange = Range{Remote: "origin", BaseBranch: "feature", UpstreamBranch: "main"}

func TestRange(t *testing.T) {
	assert.Equal(t, "origin/main", defaultRange.From())
	assert.Equal(t, "origin/feature", defaultRange.To())
	assert.Equal(t, "origin/main..origin/feature", defaultRange.String())
}

func TestResolver_Resolve(t *testing.T) {
	repo := &vcstest.Repo{}
	repo.On("Fetch", mock.Anything, "origin", "feature").Return(nil)
	repo.On("ListRange", mock.Anything, "origin/main", "origin/feature").Return([]string{"abc1234", "def5678"}, nil)

	shas, err := NewResolver(repo, defaultRange, nil).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc1234", "def5678"}, shas)
	repo.AssertExpectations(t)
}

func TestResolver_FetchFailureIsConfigurationError(t *testing.T) {
	cause := errors.New("couldn't find remote ref feature")
	repo := &vcstest.Repo{}
	repo.On("Fetch", mock.Anything, "origin", "feature").Return(cause)

	_, err := NewResolver(repo, defaultRange, nil).Resolve(context.Background())
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "origin", cfgErr.Remote)
	assert.Equal(t, "feature", cfgErr.Branch)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "commitfmt check --help")
	repo.AssertNotCalled(t, "ListRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_ListFailurePropagates(t *testing.T) {
	cause := errors.New("unknown revision")
	repo := &vcstest.Repo{}
	repo.On("Fetch", mock.Anything, "origin", "feature").Return(nil)
	repo.On("ListRange", mock.Anything, "origin/main", "origin/feature").Return(nil, cause)

	_, err := NewResolver(repo, defaultRange, nil).Resolve(context.Background())
	require.ErrorIs(t, err, cause)

	var cfgErr *ConfigurationError
	assert.False(t, errors.As(err, &cfgErr))
}

func TestInspector_Inspect(t *testing.T) {
	repo := &vcstest.Repo{}
	repo.AddCommit("abc1234", "dev@example.com\n", "Fix bug\n\nSigned-off-by: a@x.com\n")

	c, err := NewInspector(repo).Inspect(context.Background(), "abc1234")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", c.SHA)
	assert.Equal(t, "dev@example.com", c.AuthorEmail)
	assert.Equal(t, []string{"Fix bug", "", "Signed-off-by: a@x.com", ""}, c.Lines)
	assert.Equal(t, "Fix bug", c.Title())
}

func TestInspector_AuthorFailure(t *testing.T) {
	repo := &vcstest.Repo{}
	repo.On("AuthorEmail", mock.Anything, "abc1234").Return("", errors.New("bad object"))

	_, err := NewInspector(repo).Inspect(context.Background(), "abc1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading author of abc1234")
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{""}, SplitMessage(""))
	assert.Equal(t, []string{"Fix bug", ""}, SplitMessage("Fix bug\n"))
	assert.Equal(t, "", Commit{}.Title())
}
