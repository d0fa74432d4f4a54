package resolver

import (
	"path/filepath"

	"layoutlint/internal/shared/util"
)

// SourceExtensions are appended, in order, when probing a candidate path.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// Probe finds the file a candidate denotes: the literal path, then the path
// with each source extension, then an index file inside the directory.
func Probe(candidate string) (string, bool) {
	if util.IsRegularFile(candidate) {
		return candidate, true
	}
	for _, ext := range SourceExtensions {
		if p := candidate + ext; util.IsRegularFile(p) {
			return p, true
		}
	}
	if !util.IsDir(candidate) {
		return "", false
	}
	for _, ext := range SourceExtensions {
		if p := filepath.Join(candidate, "index"+ext); util.IsRegularFile(p) {
			return p, true
		}
	}
	return "", false
}
