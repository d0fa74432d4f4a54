// Package parser extracts import specifiers from JavaScript and TypeScript
// sources with lexical patterns. It does not parse the module grammar, so
// matching text inside comments or template literals is reported too.
package parser

import (
	"os"
	"sort"
)

// Extractor reads files and returns their raw specifiers.
type Extractor struct {
	readFile func(string) ([]byte, error)
}

func NewExtractor() *Extractor {
	return &Extractor{readFile: os.ReadFile}
}

// ExtractFile returns the specifiers of path in first-seen order.
// Unreadable files yield nil.
func (e *Extractor) ExtractFile(path string) []string {
	content, err := e.readFile(path)
	if err != nil {
		return nil
	}
	return ExtractSpecifiers(content)
}

type specifierMatch struct {
	offset int
	value  string
}

// ExtractSpecifiers applies the import, require and re-export patterns and
// merges their captures by position in the text.
func ExtractSpecifiers(content []byte) []string {
	var matches []specifierMatch
	for _, re := range specifierPatterns {
		for _, loc := range re.FindAllSubmatchIndex(content, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			matches = append(matches, specifierMatch{
				offset: loc[0],
				value:  string(content[loc[2]:loc[3]]),
			})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}
