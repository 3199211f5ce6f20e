package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitfmt/internal/testutil/golden"
)

func sampleReport() *Report {
	r := New("origin/main..origin/feature")
	r.Add(CommitResult{SHA: "abc1234", Title: "Fix bug", Status: StatusPass})
	r.Add(CommitResult{SHA: "def5678", Title: "Bump deps", Status: StatusSkip, Note: "exempt author"})
	r.Add(CommitResult{
		SHA:    "0123abc",
		Title:  "Add a | pipe",
		Status: StatusFail,
		Rule:   "missing-signoff",
		Note:   "missing-signoff: commit '0123abc' is not signed",
	})
	return r
}

func TestReport_Add(t *testing.T) {
	r := New("origin/main..origin/feature")
	assert.Equal(t, StatusPass, r.Status)

	r.Add(CommitResult{SHA: "abc1234", Status: StatusPass})
	r.Add(CommitResult{SHA: "def5678", Status: StatusSkip})
	assert.Equal(t, StatusPass, r.Status)
	assert.Empty(t, r.Failed)

	r.Add(CommitResult{SHA: "0123abc", Status: StatusFail})
	r.Add(CommitResult{SHA: "4567def", Status: StatusPass})
	assert.Equal(t, StatusFail, r.Status)
	assert.Equal(t, []string{"0123abc"}, r.Failed)
	assert.Equal(t, map[Status]int{StatusPass: 2, StatusFail: 1, StatusSkip: 1}, r.Counts())
}

func TestStore_WriteReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")

	missing, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	want := sampleReport()
	require.NoError(t, WriteJSON(path, want))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_ReadJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := ReadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding report")
}

func TestAppendSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, AppendSummary(path, "first\n"))
	require.NoError(t, AppendSummary(path, "second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestRenderMarkdown(t *testing.T) {
	golden.Assert(t, "summary", RenderMarkdown(sampleReport()))
}

func TestRenderMarkdown_Empty(t *testing.T) {
	out := RenderMarkdown(New("origin/main..origin/main"))
	assert.Equal(t, "## Commit format: PASS\n\nRange: `origin/main..origin/main`\n\nNo commits to check.\n", out)
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleReport())
	assert.Contains(t, out, "Range: origin/main..origin/feature\n")
	assert.Contains(t, out, "PASS: abc1234 Fix bug\n")
	assert.Contains(t, out, "SKIP: def5678 Bump deps\n  exempt author\n")
	assert.Contains(t, out, "FAIL: 0123abc Add a | pipe\n  missing-signoff: commit '0123abc' is not signed\n")
	assert.Contains(t, out, "3 commit(s): 1 passed, 1 failed, 1 skipped\n")
	assert.Contains(t, out, "Status: fail\n")
}
