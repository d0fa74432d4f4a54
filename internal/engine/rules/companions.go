package rules

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
	"layoutlint/internal/engine/pattern"
	"layoutlint/internal/engine/resolver"
	"layoutlint/internal/shared/util"
)

var (
	companionStem    = regexp.MustCompile(`\.(test|spec|stories)(\.|$)`)
	storyExtensions  = []string{".tsx", ".jsx", ".ts", ".js", ".mdx"}
	componentSources = map[string]bool{".tsx": true, ".jsx": true}
)

type companionCategory struct {
	name     string
	patterns []string
	globs    pattern.Set
}

func (c companionCategory) satisfiedBy(entries []string) bool {
	for _, entry := range entries {
		if c.globs.MatchAnyName(entry) {
			return true
		}
	}
	return false
}

// CompanionRule requires tests, stories and configured companion files next
// to source files. Companion files themselves are never checked.
type CompanionRule struct {
	severity       diagnostics.Severity
	requireTests   bool
	requireStories bool
	integration    *companionCategory
	userScenarios  *companionCategory
	custom         []companionCategory
}

func NewCompanionRule(severity diagnostics.Severity, opts config.RuleOptions) *CompanionRule {
	r := &CompanionRule{
		severity:       severity,
		requireTests:   opts.RequireTestFiles,
		requireStories: opts.RequireStoryFiles,
	}
	patterns := opts.CompanionFilePatterns
	if patterns == nil {
		return r
	}
	r.integration = newCompanionCategory("integration_tests", patterns.IntegrationTests)
	r.userScenarios = newCompanionCategory("page_user_scenarios", patterns.PageUserScenarios)
	for _, name := range util.SortedStringKeys(patterns.Custom) {
		if c := newCompanionCategory(name, patterns.Custom[name]); c != nil {
			r.custom = append(r.custom, *c)
		}
	}
	return r
}

func newCompanionCategory(name string, patterns []string) *companionCategory {
	if len(patterns) == 0 {
		return nil
	}
	globs := pattern.CompileAll(patterns)
	for _, err := range globs.Errs() {
		slog.Warn("ignoring invalid companion pattern", "category", name, "error", err)
	}
	return &companionCategory{name: name, patterns: patterns, globs: globs}
}

// Enabled reports whether any companion requirement is configured.
func (r *CompanionRule) Enabled() bool {
	return r.requireTests || r.requireStories || r.integration != nil || r.userScenarios != nil || len(r.custom) > 0
}

func (r *CompanionRule) Name() string { return RuleMissingCompanions }

func (r *CompanionRule) Check(file string, sink ports.DiagnosticSink) {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if companionStem.MatchString(stem) {
		return
	}
	entries := siblingNames(filepath.Dir(file))

	if stem == "page" {
		if r.userScenarios != nil && !r.userScenarios.satisfiedBy(entries) {
			r.emit(sink, file, categoryMessage(*r.userScenarios, file))
		}
		return
	}
	if isSpecialStem(stem) {
		return
	}

	if r.requireTests && !hasAny(entries, companionNames(stem, []string{".test", ".spec"}, resolver.SourceExtensions)) {
		r.emit(sink, file, fmt.Sprintf("Missing test file for '%s'", file))
	}
	if r.requireStories && componentSources[ext] && !hasAny(entries, companionNames(stem, []string{".stories"}, storyExtensions)) {
		r.emit(sink, file, fmt.Sprintf("Missing story file for '%s'", file))
	}
	if r.integration != nil && !r.integration.satisfiedBy(entries) {
		r.emit(sink, file, categoryMessage(*r.integration, file))
	}
	for _, c := range r.custom {
		if !c.satisfiedBy(entries) {
			r.emit(sink, file, categoryMessage(c, file))
		}
	}
}

func (r *CompanionRule) emit(sink ports.DiagnosticSink, file, msg string) {
	sink.Add(diagnostics.Diagnostic{
		Severity: r.severity,
		Rule:     RuleMissingCompanions,
		Message:  msg,
		File:     file,
	})
}

func categoryMessage(c companionCategory, file string) string {
	return fmt.Sprintf("Missing %s companion for '%s' (expected one of: %s)", c.name, file, strings.Join(c.patterns, ", "))
}

func companionNames(stem string, markers, exts []string) map[string]bool {
	out := make(map[string]bool, len(markers)*len(exts))
	for _, marker := range markers {
		for _, ext := range exts {
			out[stem+marker+ext] = true
		}
	}
	return out
}

func hasAny(entries []string, names map[string]bool) bool {
	for _, entry := range entries {
		if names[entry] {
			return true
		}
	}
	return false
}

func siblingNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Name())
	}
	return out
}
