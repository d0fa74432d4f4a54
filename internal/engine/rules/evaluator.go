package rules

import (
	"path/filepath"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
	"layoutlint/internal/shared/util"
)

// OrganizationEvaluator runs every compiled organization rule against a file.
type OrganizationEvaluator struct {
	root     string
	severity diagnostics.Severity
	rules    []OrganizationRule
	index    ports.ImportIndex
}

// NewOrganizationEvaluator binds compiled rules to the run's import index.
// index may be nil when no rule is location-conditional.
func NewOrganizationEvaluator(root string, severity diagnostics.Severity, rules []OrganizationRule, index ports.ImportIndex) *OrganizationEvaluator {
	return &OrganizationEvaluator{
		root:     root,
		severity: severity,
		rules:    rules,
		index:    index,
	}
}

func (e *OrganizationEvaluator) Name() string { return RuleFileOrganization }

// Check evaluates each rule in configuration order. Rules are independent,
// so one file may collect diagnostics from several of them.
func (e *OrganizationEvaluator) Check(file string, sink ports.DiagnosticSink) {
	rel := util.RelativeSlashPath(file, e.root)
	for _, rule := range e.rules {
		if !rule.Applies(rel) {
			continue
		}
		e.checkRequirements(rule, file, sink)
		if rule.Kind == KindLocationConditional {
			e.checkPlacement(rule, file, rel, sink)
		}
	}
}

func (e *OrganizationEvaluator) checkRequirements(rule OrganizationRule, file string, sink ports.DiagnosticSink) {
	dir := filepath.Dir(file)
	for _, req := range rule.requirements {
		if req.Satisfied(dir) {
			continue
		}
		sink.Add(diagnostics.Diagnostic{
			Severity: e.severity,
			Rule:     rule.DiagnosticRule(),
			Message:  req.Message(file),
			File:     file,
		})
	}
}

// checkPlacement emits at most one diagnostic. The first importer that
// matches the importer glob and imports through a matching specifier decides.
func (e *OrganizationEvaluator) checkPlacement(rule OrganizationRule, file, rel string, sink ports.DiagnosticSink) {
	if e.index == nil || rule.placement == nil {
		return
	}
	p := rule.placement
	for _, importer := range e.index.Importers(file) {
		if !p.importer.Match(importer, e.root) {
			continue
		}
		if !p.TriggeredBy(e.index.Specifiers(importer)) {
			continue
		}
		if !p.Allows(rel) {
			sink.Add(diagnostics.Diagnostic{
				Severity: e.severity,
				Rule:     rule.DiagnosticRule(),
				Message:  p.Message(util.RelativeSlashPath(importer, e.root)),
				File:     file,
			})
		}
		return
	}
}
