// Package pattern matches project files against include/exclude globs.
//
// Globs follow shell semantics with "/" as the separator: "*" stays inside
// one segment and "**" crosses segments. Every path is made relative to the
// project root first, then matched both bare and with a leading "/" so that
// "**/page.tsx" also matches a root-level "page.tsx". An inner "/**/" may
// match zero directories, so "app/**/page.tsx" matches "app/page.tsx".
package pattern

import (
	"strings"

	"layoutlint/internal/core/errors"
	"layoutlint/internal/shared/util"

	"github.com/gobwas/glob"
)

// Matcher is a compiled glob. An invalid pattern compiles to a matcher that
// never matches; Err reports why.
type Matcher struct {
	raw   string
	globs []glob.Glob
	err   error
}

// Compile compiles pattern with "/" as the segment separator.
func Compile(pattern string) Matcher {
	raw := strings.TrimSpace(pattern)
	variants := expandGlobstar(raw)
	globs := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			de := &errors.DomainError{Code: errors.CodePattern, Message: "invalid glob", Err: err}
			return Matcher{raw: raw, err: de.WithContext(errors.CtxPattern, raw)}
		}
		globs = append(globs, g)
	}
	return Matcher{raw: raw, globs: globs}
}

// expandGlobstar returns p plus every spelling with some "/**/" collapsed
// to "/".
func expandGlobstar(p string) []string {
	out := []string{p}
	seen := map[string]bool{p: true}
	for i := 0; i < len(out); i++ {
		cur := out[i]
		for off := 0; ; {
			j := strings.Index(cur[off:], "/**/")
			if j < 0 {
				break
			}
			at := off + j
			collapsed := cur[:at] + cur[at+3:]
			if !seen[collapsed] {
				seen[collapsed] = true
				out = append(out, collapsed)
			}
			off = at + 1
		}
	}
	return out
}

func (m Matcher) match(s string) bool {
	for _, g := range m.globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

func (m Matcher) String() string { return m.raw }

func (m Matcher) Err() error { return m.err }

func (m Matcher) Valid() bool { return len(m.globs) > 0 }

// MatchRelative tests an already root-relative, slash-separated path.
func (m Matcher) MatchRelative(rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	if m.match(rel) {
		return true
	}
	if !strings.HasPrefix(rel, "/") {
		return m.match("/" + rel)
	}
	return false
}

// Match tests file after making it relative to root.
func (m Matcher) Match(file, root string) bool {
	return m.MatchRelative(util.RelativeSlashPath(file, root))
}

// MatchName tests a bare directory entry name, used for sibling globs.
func (m Matcher) MatchName(name string) bool {
	return m.match(name)
}

// Set is an ordered list of matchers.
type Set []Matcher

func CompileAll(patterns []string) Set {
	out := make(Set, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, Compile(p))
	}
	return out
}

// MatchAny reports whether any matcher in the set matches file.
func (s Set) MatchAny(file, root string) bool {
	return s.MatchAnyRelative(util.RelativeSlashPath(file, root))
}

// Errs returns the compile errors of invalid members.
func (s Set) Errs() []error {
	var out []error
	for _, m := range s {
		if m.err != nil {
			out = append(out, m.err)
		}
	}
	return out
}

// Matches compiles pattern and tests file against it.
func Matches(file, pattern, root string) bool {
	return Compile(pattern).Match(file, root)
}

// IsExcluded reports whether any exclude pattern matches file.
func IsExcluded(file string, excludes []string, root string) bool {
	return CompileAll(excludes).MatchAny(file, root)
}

// MatchAnyRelative is MatchAny for an already root-relative path.
func (s Set) MatchAnyRelative(rel string) bool {
	for _, m := range s {
		if m.MatchRelative(rel) {
			return true
		}
	}
	return false
}

// MatchAnyName reports whether any matcher matches a bare entry name.
func (s Set) MatchAnyName(name string) bool {
	for _, m := range s {
		if m.MatchName(name) {
			return true
		}
	}
	return false
}
