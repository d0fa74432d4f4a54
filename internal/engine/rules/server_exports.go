package rules

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
)

// DefaultServerOnlyExports are data-fetching exports that only run on the server.
var DefaultServerOnlyExports = []string{
	"getServerSideProps",
	"getStaticProps",
	"getStaticPaths",
	"getInitialProps",
}

var useClientDirective = regexp.MustCompile(`^\s*(?:'use client'|"use client")\s*;?\s*$`)

type serverExport struct {
	name    string
	pattern *regexp.Regexp
}

// ServerExportsRule flags server-only exports in files marked "use client".
type ServerExportsRule struct {
	severity diagnostics.Severity
	exports  []serverExport
}

func NewServerExportsRule(severity diagnostics.Severity, names []string) *ServerExportsRule {
	if len(names) == 0 {
		names = DefaultServerOnlyExports
	}
	r := &ServerExportsRule{severity: severity}
	for _, name := range names {
		r.exports = append(r.exports, serverExport{
			name:    name,
			pattern: regexp.MustCompile(`export\s+(?:const|let|var|function|async\s+function)\s+` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	return r
}

func (r *ServerExportsRule) Name() string { return RuleServerSideExports }

func (r *ServerExportsRule) Check(file string, sink ports.DiagnosticSink) {
	content, err := os.ReadFile(file)
	if err != nil || !isClientModule(content) {
		return
	}
	for _, exp := range r.exports {
		loc := exp.pattern.FindIndex(content)
		if loc == nil {
			continue
		}
		sink.Add(diagnostics.Diagnostic{
			Severity: r.severity,
			Rule:     RuleServerSideExports,
			Message:  fmt.Sprintf("Server-side export '%s' found in client component", exp.name),
			File:     file,
			Line:     bytes.Count(content[:loc[0]], []byte("\n")) + 1,
		})
	}
}

func isClientModule(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		if useClientDirective.Match(line) {
			return true
		}
	}
	return false
}
