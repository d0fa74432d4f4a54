package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePatternPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: ".", want: ""},
		{in: "./components/", want: "components"},
		{in: `app\ui\Button.tsx`, want: "app/ui/Button.tsx"},
		{in: "  lib//utils ", want: "lib/utils"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePatternPath(tt.in), "input %q", tt.in)
	}
}

func TestHasPathPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		prefix string
		want   bool
	}{
		{name: "exact", path: "components", prefix: "components", want: true},
		{name: "nested", path: "components/ui/Button.tsx", prefix: "components", want: true},
		{name: "trailing slash prefix", path: "components/Button.tsx", prefix: "components/", want: true},
		{name: "leading slash prefix", path: "components/Button.tsx", prefix: "/components", want: true},
		{name: "sibling with shared stem", path: "components-old/Button.tsx", prefix: "components", want: false},
		{name: "unrelated", path: "lib/Button.tsx", prefix: "components", want: false},
		{name: "empty prefix", path: "lib/Button.tsx", prefix: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPathPrefix(tt.path, tt.prefix))
		})
	}
}

func TestHasAnyPathPrefix(t *testing.T) {
	t.Parallel()

	assert.True(t, HasAnyPathPrefix("src/components/Button.tsx", []string{"components", "src/components"}))
	assert.False(t, HasAnyPathPrefix("lib/Button.tsx", []string{"components", "src"}))
	assert.False(t, HasAnyPathPrefix("lib/Button.tsx", nil))
}

func TestRelativeSlashPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("project", "root")
	assert.Equal(t, "app/page.tsx", RelativeSlashPath(filepath.Join(root, "app", "page.tsx"), root))
	assert.Equal(t, "elsewhere/page.tsx", RelativeSlashPath(filepath.Join("elsewhere", "page.tsx"), "."))
	assert.Equal(t, "other/page.tsx", RelativeSlashPath(filepath.Join("other", "page.tsx"), root),
		"paths outside the root are kept as-is")
}

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	keys := SortedStringKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestWriteFileWithDirs(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "reports", "nested", "out.json")
	require.NoError(t, WriteFileWithDirs(target, []byte("{}"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCanonicalizeResolvesSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := filepath.Join(dir, "Button.tsx")
	require.NoError(t, os.WriteFile(original, nil, 0o644))
	link := filepath.Join(dir, "Alias.tsx")
	if err := os.Symlink(original, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.Equal(t, Canonicalize(original), Canonicalize(link))
	assert.Equal(t, Canonicalize(original), Canonicalize(filepath.Join(dir, ".", "sub", "..", "Button.tsx")))
}

func TestFileKindHelpers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(dir))
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsRegularFile(filepath.Join(dir, "missing.ts")))
}
