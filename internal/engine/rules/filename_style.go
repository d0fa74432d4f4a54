package rules

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
)

var (
	kebabCase  = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	camelCase  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	pascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	snakeCase  = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
)

// FilenameStyleRule checks file names against one casing convention.
type FilenameStyleRule struct {
	severity diagnostics.Severity
	style    config.FilenameStyle
}

func NewFilenameStyleRule(severity diagnostics.Severity, style config.FilenameStyle) *FilenameStyleRule {
	return &FilenameStyleRule{severity: severity, style: style}
}

func (r *FilenameStyleRule) Name() string { return RuleFilenameStyle }

func (r *FilenameStyleRule) Check(file string, sink ports.DiagnosticSink) {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if isSpecialStem(stem) {
		return
	}
	name := stem
	if i := strings.Index(stem, "."); i > 0 {
		name = stem[:i]
	}
	if MatchesStyle(name, r.style) {
		return
	}
	sink.Add(diagnostics.Diagnostic{
		Severity: r.severity,
		Rule:     RuleFilenameStyle,
		Message:  fmt.Sprintf("Filename '%s' does not match expected style: %s", stem, r.style),
		File:     file,
	})
}

// MatchesStyle reports whether name follows style. Camel case needs an
// upper-case letter and Pascal case a lower-case one, so single words stay
// unambiguous.
func MatchesStyle(name string, style config.FilenameStyle) bool {
	switch style {
	case config.StyleKebabCase:
		return kebabCase.MatchString(name)
	case config.StyleCamelCase:
		return camelCase.MatchString(name) && strings.IndexFunc(name, unicode.IsUpper) >= 0
	case config.StylePascalCase:
		return pascalCase.MatchString(name) && strings.IndexFunc(name, unicode.IsLower) >= 0
	case config.StyleSnakeCase:
		return snakeCase.MatchString(name)
	default:
		return true
	}
}
