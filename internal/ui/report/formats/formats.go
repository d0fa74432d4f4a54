// Package formats renders lint results for people and for tools.
package formats

import (
	"path/filepath"

	"layoutlint/internal/core/diagnostics"
)

// Report is everything a renderer needs from one run.
type Report struct {
	RunID       string
	Root        string
	Files       int
	Diagnostics []diagnostics.Diagnostic
	Errors      int
	Warnings    int
}

// NewReport counts severities from diags.
func NewReport(runID, root string, files int, diags []diagnostics.Diagnostic) Report {
	r := Report{RunID: runID, Root: root, Files: files, Diagnostics: diags}
	for _, d := range diags {
		switch d.Severity {
		case diagnostics.SeverityError:
			r.Errors++
		case diagnostics.SeverityWarn:
			r.Warnings++
		}
	}
	return r
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	return filepath.ToSlash(filePath)
}
