package rules

import (
	"log/slog"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
)

// RuleSet holds every enabled rule compiled from one configuration.
type RuleSet struct {
	root         string
	peers        []ports.FileRule
	orgSeverity  diagnostics.Severity
	organization []OrganizationRule
}

// NewRuleSet compiles cfg for the project at root. Pattern problems in
// organization checks are logged and leave the affected pattern inert.
func NewRuleSet(cfg *config.Config, root string) *RuleSet {
	set := &RuleSet{root: root}
	r := cfg.Rules

	if r.ServerSideExports.Severity.Enabled() {
		set.peers = append(set.peers, NewServerExportsRule(r.ServerSideExports.Severity, r.ServerSideExports.Options.ServerOnlyExports))
	}
	if r.ComponentNestingDepth.Severity.Enabled() {
		set.peers = append(set.peers, NewNestingRule(root, r.ComponentNestingDepth.Severity, r.ComponentNestingDepth.Options.NestingDepth()))
	}
	if r.FilenameStyleConsistency.Severity.Enabled() {
		set.peers = append(set.peers, NewFilenameStyleRule(r.FilenameStyleConsistency.Severity, r.FilenameStyleConsistency.Options.Style()))
	}
	if r.MissingCompanionFiles.Severity.Enabled() {
		if companions := NewCompanionRule(r.MissingCompanionFiles.Severity, r.MissingCompanionFiles.Options); companions.Enabled() {
			set.peers = append(set.peers, companions)
		}
	}

	checks := r.FileOrganization.Options.FileOrganizationChecks
	if r.FileOrganization.Severity.Enabled() && len(checks) > 0 {
		compiled, warnings := CompileOrganizationRules(checks)
		for _, w := range warnings {
			slog.Warn("file organization rule misconfigured", "error", w)
		}
		set.orgSeverity = r.FileOrganization.Severity
		set.organization = compiled
	}
	return set
}

// NeedsImportGraph reports whether any rule consults the import graph.
func (s *RuleSet) NeedsImportGraph() bool {
	for _, rule := range s.organization {
		if rule.Kind == KindLocationConditional {
			return true
		}
	}
	return false
}

// OrganizationRules returns the compiled organization rules in config order.
func (s *RuleSet) OrganizationRules() []OrganizationRule {
	out := make([]OrganizationRule, len(s.organization))
	copy(out, s.organization)
	return out
}

// Bind returns the per-file rules in evaluation order: peer rules first,
// then organization rules bound to index.
func (s *RuleSet) Bind(index ports.ImportIndex) []ports.FileRule {
	out := make([]ports.FileRule, 0, len(s.peers)+1)
	out = append(out, s.peers...)
	if len(s.organization) > 0 {
		out = append(out, NewOrganizationEvaluator(s.root, s.orgSeverity, s.organization, index))
	}
	return out
}

// Len is the number of enabled rules, counting each organization check.
func (s *RuleSet) Len() int {
	return len(s.peers) + len(s.organization)
}
