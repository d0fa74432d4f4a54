// Package rules holds the lint rules. Organization rules are compiled from
// configuration into variants; the peer rules are single-file predicates.
package rules

const (
	RuleServerSideExports     = "server-side-exports"
	RuleComponentNestingDepth = "component-nesting-depth"
	RuleFilenameStyle         = "filename-style-consistency"
	RuleMissingCompanions     = "missing-companion-files"
	RuleFileOrganization      = "file-organization"
)

// specialStems are Next.js convention files and tool configs that keep
// their framework-mandated names.
var specialStems = map[string]bool{
	"page":            true,
	"layout":          true,
	"template":        true,
	"loading":         true,
	"error":           true,
	"global-error":    true,
	"not-found":       true,
	"route":           true,
	"default":         true,
	"middleware":      true,
	"instrumentation": true,
	"next.config":     true,
	"next-env.d":      true,
	"tailwind.config": true,
	"postcss.config":  true,
	"eslint.config":   true,
	"tsconfig":        true,
	"jsconfig":        true,
	"vitest.config":   true,
	"jest.config":     true,
	"jest.setup":      true,
}

// isSpecialStem also covers dynamic route segments such as "[slug]" and
// pages-router internals such as "_app" or "404".
func isSpecialStem(stem string) bool {
	if specialStems[stem] {
		return true
	}
	if stem == "" {
		return false
	}
	switch stem[0] {
	case '[', '_':
		return true
	}
	return stem == "404" || stem == "500"
}
