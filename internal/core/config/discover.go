package config

import (
	"path/filepath"

	"layoutlint/internal/shared/util"
)

// DefaultFileName is written by "layoutlint init".
const DefaultFileName = ".layoutlintrc.json"

// DiscoveryCandidates are probed, in order, inside the project directory.
var DiscoveryCandidates = []string{
	DefaultFileName,
	".layoutlintrc.jsonc",
	".layoutlintrc.yaml",
	".layoutlintrc.yml",
	".layoutlintrc.toml",
	"layoutlint.config.json",
	".next-structure-lintrc.json",
	".naechste.config.json",
}

// Discover returns the first candidate config file present in dir.
func Discover(dir string) (string, bool) {
	for _, name := range DiscoveryCandidates {
		candidate := filepath.Join(dir, name)
		if util.IsRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}
