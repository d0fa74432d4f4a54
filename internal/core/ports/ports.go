package ports

import "layoutlint/internal/core/diagnostics"

// DiagnosticSink receives violations in emission order.
type DiagnosticSink interface {
	Add(d diagnostics.Diagnostic)
}

// FileRule is a per-file check. Rules share one sink per run.
type FileRule interface {
	Name() string
	Check(file string, sink DiagnosticSink)
}

// SpecifierExtractor returns the raw import specifiers found in a file.
// Unreadable files yield an empty result.
type SpecifierExtractor interface {
	ExtractFile(path string) []string
}

// SpecifierResolver maps a specifier written in importer to an existing,
// canonical project file.
type SpecifierResolver interface {
	ResolveFile(specifier, importer string) (string, bool)
}

// ImportIndex is the read-only reverse import view consumed by placement checks.
type ImportIndex interface {
	// Importers returns the files importing target. target need not be canonical.
	Importers(target string) []string
	// Specifiers returns the specifiers extracted from importer during the build.
	Specifiers(importer string) []string
}
