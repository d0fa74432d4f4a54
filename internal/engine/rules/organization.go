package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/errors"
	"layoutlint/internal/engine/pattern"
	"layoutlint/internal/shared/util"
)

// RuleKind is the shape an organization rule compiles to.
type RuleKind int

const (
	// KindUnconditional matches files but carries no checks.
	KindUnconditional RuleKind = iota
	// KindSiblingOnly checks sibling requirements only.
	KindSiblingOnly
	// KindLocationConditional adds an import-triggered placement constraint,
	// on top of any sibling requirements.
	KindLocationConditional
)

func (k RuleKind) String() string {
	switch k {
	case KindSiblingOnly:
		return "sibling-only"
	case KindLocationConditional:
		return "location-conditional"
	default:
		return "unconditional"
	}
}

// OrganizationRule is a compiled file_organization check.
type OrganizationRule struct {
	ID          string
	Description string
	Kind        RuleKind

	include      pattern.Matcher
	excludes     pattern.Set
	requirements []SiblingRequirement
	placement    *Placement
}

// SiblingRequirement is a companion that must exist in the matched file's directory.
type SiblingRequirement interface {
	Satisfied(dir string) bool
	Message(file string) string
}

type siblingExact struct {
	name string
}

func (r siblingExact) Satisfied(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, r.name))
	return err == nil
}

func (r siblingExact) Message(file string) string {
	return fmt.Sprintf("Missing required companion file '%s' next to '%s'", r.name, file)
}

type siblingGlob struct {
	matcher pattern.Matcher
}

func (r siblingGlob) Satisfied(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if r.matcher.MatchName(entry.Name()) {
			return true
		}
	}
	return false
}

func (r siblingGlob) Message(file string) string {
	return fmt.Sprintf("Missing required companion file matching '%s' next to '%s'", r.matcher.String(), file)
}

// Placement is the trigger plus constraint of a location-conditional rule.
type Placement struct {
	importer    pattern.Matcher
	specifiers  []*regexp.Regexp
	mustBeUnder []string
	message     string
}

// TriggeredBy reports whether any specifier matches any configured expression.
func (p *Placement) TriggeredBy(specifiers []string) bool {
	for _, spec := range specifiers {
		for _, re := range p.specifiers {
			if re.MatchString(spec) {
				return true
			}
		}
	}
	return false
}

// Allows reports whether the root-relative path lives under an allowed prefix.
func (p *Placement) Allows(rel string) bool {
	return util.HasAnyPathPrefix(rel, p.mustBeUnder)
}

// Message returns the custom message or one naming importer and prefixes.
func (p *Placement) Message(importer string) string {
	if p.message != "" {
		return p.message
	}
	return fmt.Sprintf("File is imported by '%s' but is not located under any of: %s",
		importer, strings.Join(p.mustBeUnder, ", "))
}

// Applies reports whether the include glob matches rel and no exclude does.
func (r OrganizationRule) Applies(rel string) bool {
	return r.include.MatchRelative(rel) && !r.excludes.MatchAnyRelative(rel)
}

func (r OrganizationRule) DiagnosticRule() string {
	return RuleFileOrganization + ":" + r.ID
}

// CompileOrganizationRules compiles checks in configuration order. Invalid
// globs and expressions stay in the rule as never-matching patterns and are
// reported in warnings, as is a trigger or constraint configured alone.
func CompileOrganizationRules(checks []config.FileOrganizationCheck) ([]OrganizationRule, []error) {
	out := make([]OrganizationRule, 0, len(checks))
	var warnings []error

	warn := func(id, field, raw string, cause error) {
		de := &errors.DomainError{Code: errors.CodePattern, Message: "pattern ignored", Err: cause}
		warnings = append(warnings, de.
			WithContext(errors.CtxRule, id).
			WithContext(errors.CtxField, field).
			WithContext(errors.CtxPattern, raw))
	}

	for _, check := range checks {
		rule := OrganizationRule{
			ID:          check.ID,
			Description: check.Description,
			include:     pattern.Compile(check.Match.Glob),
			excludes:    pattern.CompileAll(check.Match.ExcludeGlob),
		}
		if err := rule.include.Err(); err != nil {
			warn(check.ID, "match.glob", check.Match.Glob, err)
		}
		for i, m := range rule.excludes {
			if err := m.Err(); err != nil {
				warn(check.ID, fmt.Sprintf("match.exclude_glob[%d]", i), m.String(), err)
			}
		}

		for i, req := range check.Require {
			switch req.Kind {
			case config.RequireSiblingExact:
				rule.requirements = append(rule.requirements, siblingExact{name: req.Name})
			case config.RequireSiblingGlob:
				m := pattern.Compile(req.Glob)
				if err := m.Err(); err != nil {
					warn(check.ID, fmt.Sprintf("require[%d].glob", i), req.Glob, err)
				}
				rule.requirements = append(rule.requirements, siblingGlob{matcher: m})
			}
		}
		if len(rule.requirements) > 0 {
			rule.Kind = KindSiblingOnly
		}

		switch {
		case check.WhenImportedBy != nil && check.EnforceLocation != nil:
			rule.placement = compilePlacement(check, warn)
			rule.Kind = KindLocationConditional
		case check.WhenImportedBy != nil:
			warnings = append(warnings, inertPlacement(check.ID, "when_imported_by is set without enforce_location"))
		case check.EnforceLocation != nil:
			warnings = append(warnings, inertPlacement(check.ID, "enforce_location is set without when_imported_by"))
		}

		out = append(out, rule)
	}
	return out, warnings
}

func compilePlacement(check config.FileOrganizationCheck, warn func(id, field, raw string, cause error)) *Placement {
	p := &Placement{
		importer:    pattern.Compile(check.WhenImportedBy.ImporterGlob),
		mustBeUnder: check.EnforceLocation.MustBeUnder,
		message:     check.EnforceLocation.Message,
	}
	if err := p.importer.Err(); err != nil {
		warn(check.ID, "when_imported_by.importer_glob", check.WhenImportedBy.ImporterGlob, err)
	}
	for i, raw := range check.WhenImportedBy.ImportPathMatches {
		re, err := regexp.Compile(raw)
		if err != nil {
			warn(check.ID, fmt.Sprintf("when_imported_by.import_path_matches[%d]", i), raw, err)
			continue
		}
		p.specifiers = append(p.specifiers, re)
	}
	return p
}

func inertPlacement(id, msg string) error {
	de := &errors.DomainError{Code: errors.CodeValidationError, Message: msg + "; location check disabled"}
	return de.WithContext(errors.CtxRule, id)
}
