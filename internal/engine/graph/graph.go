// Package graph builds the reverse import index for one lint run.
package graph

import (
	"layoutlint/internal/core/ports"
	"layoutlint/internal/shared/util"
)

// ImportGraph maps a canonical target file to the files importing it.
// It is built once per run and read-only afterwards.
type ImportGraph struct {
	importedBy map[string][]string
	seen       map[string]map[string]bool
	specifiers map[string][]string
}

func newImportGraph() *ImportGraph {
	return &ImportGraph{
		importedBy: make(map[string][]string),
		seen:       make(map[string]map[string]bool),
		specifiers: make(map[string][]string),
	}
}

// Build extracts and resolves the imports of every file. Each importer is
// recorded once per target, in file order.
func Build(files []string, extractor ports.SpecifierExtractor, resolver ports.SpecifierResolver) *ImportGraph {
	g := newImportGraph()
	for _, file := range files {
		specs := extractor.ExtractFile(file)
		if len(specs) == 0 {
			continue
		}
		g.specifiers[file] = specs
		for _, spec := range specs {
			target, ok := resolver.ResolveFile(spec, file)
			if !ok {
				continue
			}
			g.addEdge(target, file)
		}
	}
	return g
}

func (g *ImportGraph) addEdge(target, importer string) {
	importers := g.seen[target]
	if importers == nil {
		importers = make(map[string]bool)
		g.seen[target] = importers
	}
	if importers[importer] {
		return
	}
	importers[importer] = true
	g.importedBy[target] = append(g.importedBy[target], importer)
}

// Importers returns the importers of target, canonicalizing it first.
func (g *ImportGraph) Importers(target string) []string {
	if g == nil {
		return nil
	}
	importers := g.importedBy[util.Canonicalize(target)]
	out := make([]string, len(importers))
	copy(out, importers)
	return out
}

// Specifiers returns what importer was found to import during the build.
func (g *ImportGraph) Specifiers(importer string) []string {
	if g == nil {
		return nil
	}
	return g.specifiers[importer]
}

// Targets returns every resolved target in sorted order.
func (g *ImportGraph) Targets() []string {
	if g == nil {
		return nil
	}
	return util.SortedStringKeys(g.importedBy)
}

// Len is the number of distinct resolved targets.
func (g *ImportGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.importedBy)
}

// EdgeCount is the number of distinct (target, importer) pairs.
func (g *ImportGraph) EdgeCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, importers := range g.importedBy {
		n += len(importers)
	}
	return n
}
