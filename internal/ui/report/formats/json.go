package formats

import (
	"encoding/json"

	"layoutlint/internal/core/diagnostics"
)

type jsonReport struct {
	RunID       string                   `json:"run_id"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	Summary     jsonSummary              `json:"summary"`
}

type jsonSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Files    int `json:"files"`
}

// GenerateJSON renders the run as an indented JSON document. File paths are
// made relative to the project root.
func GenerateJSON(r Report) ([]byte, error) {
	diags := make([]diagnostics.Diagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		d.File = relativeURI(r.Root, d.File)
		diags = append(diags, d)
	}
	return json.MarshalIndent(jsonReport{
		RunID:       r.RunID,
		Diagnostics: diags,
		Summary: jsonSummary{
			Errors:   r.Errors,
			Warnings: r.Warnings,
			Files:    r.Files,
		},
	}, "", "  ")
}
