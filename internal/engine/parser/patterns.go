package parser

import "regexp"

var (
	importFromPattern = regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`)
	requirePattern    = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	exportFromPattern = regexp.MustCompile(`export\s+.*?\s+from\s+['"]([^'"]+)['"]`)

	specifierPatterns = []*regexp.Regexp{importFromPattern, requirePattern, exportFromPattern}
)
