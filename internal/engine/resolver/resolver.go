// Package resolver turns raw import specifiers into project files.
package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"layoutlint/internal/shared/util"
)

// DefaultAliases maps "@/" to the project root.
var DefaultAliases = map[string]string{"@/": ""}

type alias struct {
	prefix string
	target string
}

// Resolver implements the alias, relative and external resolution rules.
type Resolver struct {
	root    string
	aliases []alias
}

// New builds a resolver for root. aliases maps a specifier prefix to a
// root-relative directory; longer prefixes win when several match.
func New(root string, aliases map[string]string) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases
	}
	r := &Resolver{root: root, aliases: make([]alias, 0, len(aliases))}
	for prefix, target := range aliases {
		if prefix == "" {
			continue
		}
		r.aliases = append(r.aliases, alias{
			prefix: prefix,
			target: filepath.FromSlash(util.NormalizePatternPath(target)),
		})
	}
	sort.Slice(r.aliases, func(i, j int) bool {
		if len(r.aliases[i].prefix) != len(r.aliases[j].prefix) {
			return len(r.aliases[i].prefix) > len(r.aliases[j].prefix)
		}
		return r.aliases[i].prefix < r.aliases[j].prefix
	})
	return r
}

// Resolve returns the candidate path a specifier denotes. The candidate may
// not exist. Bare package specifiers return false.
func (r *Resolver) Resolve(specifier, importer string) (string, bool) {
	for _, a := range r.aliases {
		if rest, ok := strings.CutPrefix(specifier, a.prefix); ok {
			return filepath.Join(r.root, a.target, filepath.FromSlash(rest)), true
		}
	}
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return filepath.Join(filepath.Dir(importer), filepath.FromSlash(specifier)), true
	}
	return "", false
}

// ResolveFile resolves specifier, probes for an existing file and returns its
// canonical path.
func (r *Resolver) ResolveFile(specifier, importer string) (string, bool) {
	candidate, ok := r.Resolve(specifier, importer)
	if !ok {
		return "", false
	}
	hit, ok := Probe(candidate)
	if !ok {
		return "", false
	}
	return util.Canonicalize(hit), true
}
