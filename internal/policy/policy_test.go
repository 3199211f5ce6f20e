package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, 60, p.TitleMaxLength)
	assert.Equal(t, 75, p.BodyLineMaxLength)
	assert.Equal(t, "Signed-off-by: ", p.SignoffPrefix)
	assert.Equal(t, []string{"dependabot"}, p.ExemptAuthors)
	require.NoError(t, p.Validate())
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "title_max_length: 72\nexempt_authors:\n  - dependabot\n  - renovate\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 72, p.TitleMaxLength)
	assert.Equal(t, DefaultBodyLineMaxLength, p.BodyLineMaxLength)
	assert.Equal(t, DefaultSignoffPrefix, p.SignoffPrefix)
	assert.Equal(t, []string{"dependabot", "renovate"}, p.ExemptAuthors)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty document", doc: ""},
		{name: "unknown key", doc: "title_max: 10\n", wantErr: "title_max"},
		{name: "zero title limit", doc: "title_max_length: 0\n", wantErr: "title_max_length"},
		{name: "negative body limit", doc: "body_line_max_length: -1\n", wantErr: "body_line_max_length"},
		{name: "empty prefix", doc: "signoff_prefix: \"\"\n", wantErr: "signoff_prefix"},
		{name: "blank exempt author", doc: "exempt_authors: [\" \"]\n", wantErr: "exempt_authors[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsExempt(t *testing.T) {
	p := Default()
	assert.True(t, p.IsExempt("49699333+dependabot[bot]@users.noreply.github.com"))
	assert.False(t, p.IsExempt("dev@example.com"))

	p.ExemptAuthors = nil
	assert.False(t, p.IsExempt("49699333+dependabot[bot]@users.noreply.github.com"))
}

func TestMarshal_RoundTripsThroughDecode(t *testing.T) {
	p := Default()
	p.TitleMaxLength = 50

	out, err := p.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "title_max_length: 50")

	back, err := Decode(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
