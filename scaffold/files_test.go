package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateManifest = `{
  "name": "vue-template",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vue-tsc && vite build"
  }
}
`

// spliceSecondLine is the positional edit that templates shaped like templateManifest were designed for.
func spliceSecondLine(contents, name string) string {
	lines := strings.Split(contents, "\n")
	lines[1] = `  "name": "` + name + `",`

	return strings.Join(lines, "\n")
}

func TestWriteEnvFile(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("OLD=1\nOTHER=2\nMORE=3\nEVEN_MORE=4\n"), 0600)
	require.NoError(t, err)

	err = WriteEnvFile(dir, "demo-app", "示例应用")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, EnvFile))
	require.NoError(t, err)

	expected := "VITE_APP_ROUTER_PREFIX = 'demo-app'\nVITE_APP_OUTPUT = './dist/demo-app'\nVITE_APP_TITLE_ZH='示例应用'\n"
	assert.Equal(t, expected, string(contents))
}

func TestSetManifestName(t *testing.T) {
	var tests = []struct {
		contents string
		name     string
		expected string
	}{
		{
			contents: templateManifest,
			name:     "demo-app",
			expected: spliceSecondLine(templateManifest, "demo-app"),
		},
		{
			contents: "{\r\n\t\"private\": true,\r\n\t\"name\":\"x\"\r\n}",
			name:     "demo-app",
			expected: "{\r\n\t\"private\": true,\r\n\t\"name\":\"demo-app\"\r\n}",
		},
		{
			contents: `{"dependencies": {"name": "keep"}, "name": "old"}`,
			name:     "a<b>&c",
			expected: `{"dependencies": {"name": "keep"}, "name": "a<b>&c"}`,
		},
		{
			contents: `{"name": "old"}`,
			name:     `quote"d`,
			expected: `{"name": "quote\"d"}`,
		},
	}

	for _, test := range tests {
		patched, err := SetManifestName(context.Background(), []byte(test.contents), test.name)
		require.NoError(t, err, test.contents)

		assert.Equal(t, test.expected, string(patched))
	}
}

func TestSetManifestNameRejects(t *testing.T) {
	var tests = []string{
		`{"private": true}`,
		`{"dependencies": {"name": "nested"}}`,
		`{"name": 1}`,
		`{"name": {"en": "x"}}`,
		`["name"]`,
	}

	for _, contents := range tests {
		_, err := SetManifestName(context.Background(), []byte(contents), "demo-app")
		assert.ErrorIs(t, err, ErrManifestName, contents)
	}

	_, err := SetManifestName(context.Background(), []byte(`{"name": "x",`), "demo-app")
	assert.Error(t, err)
}

func TestPatchManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)

	err := os.WriteFile(path, []byte(templateManifest), 0600)
	require.NoError(t, err)

	err = PatchManifest(context.Background(), dir, "demo-app")
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	before := strings.Split(templateManifest, "\n")
	after := strings.Split(string(contents), "\n")

	require.Len(t, after, len(before))
	assert.Equal(t, `  "name": "demo-app",`, after[1])

	for i := range before {
		if i != 1 {
			assert.Equal(t, before[i], after[i], "line %d", i)
		}
	}

	original := `{"version": "1.0.0"}` + "\n"

	err = os.WriteFile(path, []byte(original), 0600)
	require.NoError(t, err)

	err = PatchManifest(context.Background(), dir, "demo-app")
	require.ErrorIs(t, err, ErrManifestName)

	contents, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(contents), "a manifest without a name field is left untouched")
}
