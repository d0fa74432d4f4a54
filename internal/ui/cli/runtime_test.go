package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/errors"
	"layoutlint/internal/shared/util"
	"layoutlint/internal/shared/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companionConfig = `{"rules": {"missing_companion_files": {"severity": "error", "options": {"require_test_files": true}}}}`
	serverConfig    = `{"rules": {"server_side_exports": {"severity": "error"}}}`
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := util.Canonicalize(t.TempDir())
	for _, rel := range util.SortedStringKeys(files) {
		require.NoError(t, util.WriteFileWithDirs(filepath.Join(root, filepath.FromSlash(rel)), []byte(files[rel]), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		extra []string
		want  int
	}{
		{
			name: "missing test file at error severity",
			files: map[string]string{
				".layoutlintrc.json": companionConfig,
				"app/Button.tsx":     "export const Button = () => null\n",
			},
			want: exitLint,
		},
		{
			name: "test file present",
			files: map[string]string{
				".layoutlintrc.json":  companionConfig,
				"app/Button.tsx":      "export const Button = () => null\n",
				"app/Button.test.tsx": "",
			},
			want: exitOK,
		},
		{
			name: "server export in client component",
			files: map[string]string{
				".layoutlintrc.json": serverConfig,
				"app/widget.tsx":     "'use client'\n\nexport async function getServerSideProps() {}\n",
			},
			want: exitLint,
		},
		{
			name: "warnings only",
			files: map[string]string{
				"components/UserCard.tsx": "",
			},
			want: exitOK,
		},
		{
			name:  "unknown output format",
			files: map[string]string{"app/page.tsx": ""},
			extra: []string{"--format", "xml"},
			want:  exitUsage,
		},
		{
			name:  "unknown flag",
			files: map[string]string{"app/page.tsx": ""},
			extra: []string{"--nope"},
			want:  exitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeProject(t, tt.files)
			code, _, stderr := execute(t, append([]string{root}, tt.extra...)...)
			assert.Equal(t, tt.want, code, stderr)
		})
	}
}

func TestRunMissingRoot(t *testing.T) {
	code, stdout, stderr := execute(t, filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "lint failed")
}

func TestRunTooManyArgs(t *testing.T) {
	code, _, stderr := execute(t, "a", "b")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRunHumanReport(t *testing.T) {
	root := writeProject(t, map[string]string{
		".layoutlintrc.json": serverConfig,
		"app/widget.tsx":     "'use client'\nexport const getStaticProps = () => ({})\n",
	})

	code, stdout, _ := execute(t, root)
	assert.Equal(t, exitLint, code)
	assert.Contains(t, stdout, "error: Server-side export 'getStaticProps' found in client component [server-side-exports]")
	assert.Contains(t, stdout, "--> app/widget.tsx:2")
	assert.Contains(t, stdout, "✗ 1 error(s), 0 warning(s) found")
}

func TestRunJSONReport(t *testing.T) {
	root := writeProject(t, map[string]string{
		".layoutlintrc.json": companionConfig,
		"app/Button.tsx":     "",
	})

	code, stdout, _ := execute(t, root, "--format", "json")
	require.Equal(t, exitLint, code)

	var doc struct {
		RunID       string `json:"run_id"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Rule     string `json:"rule"`
			File     string `json:"file"`
		} `json:"diagnostics"`
		Summary struct {
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
			Files    int `json:"files"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, 1, doc.Summary.Errors)
	assert.Equal(t, 1, doc.Summary.Files)

	var rules []string
	for _, d := range doc.Diagnostics {
		rules = append(rules, d.Rule)
		assert.Equal(t, "app/Button.tsx", d.File)
	}
	assert.Contains(t, rules, "missing-companion-files")
}

func TestRunWritesOutputFile(t *testing.T) {
	root := writeProject(t, map[string]string{"app/page.tsx": ""})
	out := filepath.Join(t.TempDir(), "reports", "lint.sarif")

	code, stdout, _ := execute(t, root, "--format", "sarif", "--output", out)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "2.1.0"`)
}

func TestRunMalformedConfigFallsBackToDefaults(t *testing.T) {
	root := writeProject(t, map[string]string{
		".layoutlintrc.json": `{"rules": {`,
		"app/Button.tsx":     "",
	})

	code, _, stderr := execute(t, root)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "failed to load config, using defaults")
}

func TestRunExplicitConfig(t *testing.T) {
	root := writeProject(t, map[string]string{"app/Button.tsx": ""})
	cfgPath := filepath.Join(t.TempDir(), "strict.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(companionConfig), 0o644))

	code, _, _ := execute(t, root, "--config", cfgPath)
	assert.Equal(t, exitLint, code)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	code, stdout, _ := execute(t, "init", dir)
	require.Equal(t, exitOK, code)
	path := filepath.Join(dir, config.DefaultFileName)
	assert.Contains(t, stdout, "Created "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules.FileOrganization.Options.FileOrganizationChecks, 2)

	code, _, stderr := execute(t, "init", dir)
	assert.Equal(t, exitLint, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = execute(t, "init", dir, "--force")
	assert.Equal(t, exitOK, code)
}

func TestInitFormats(t *testing.T) {
	tests := []struct {
		format string
		file   string
	}{
		{"yaml", ".layoutlintrc.yaml"},
		{"yml", ".layoutlintrc.yaml"},
		{"toml", ".layoutlintrc.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			code, _, stderr := execute(t, "init", dir, "--format", tt.format)
			require.Equal(t, exitOK, code, stderr)

			_, err := config.Load(filepath.Join(dir, tt.file))
			assert.NoError(t, err)
		})
	}
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	code, _, _ := execute(t, "init", t.TempDir(), "--format", "ini")
	assert.Equal(t, exitUsage, code)

	_, err := parseConfigFormat("ini")
	assert.True(t, errors.IsCode(err, errors.CodeNotSupported))
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "layoutlint v"+version.Version+"\n", stdout)
}

func TestResolveLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, filepath.Join("/tmp/state", "layoutlint", "layoutlint.log"), resolveLogPath())
}

func TestWatchOptionsIgnoresReport(t *testing.T) {
	assert.Empty(t, watchOptions("").IgnoreFiles)

	dir := t.TempDir()
	out := filepath.Join(dir, "reports", "lint.sarif")
	want := filepath.Join(util.Canonicalize(filepath.Join(dir, "reports")), "lint.sarif")
	assert.Equal(t, []string{want}, watchOptions(out).IgnoreFiles)
}
