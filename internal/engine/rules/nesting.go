package rules

import (
	"fmt"
	"strings"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
	"layoutlint/internal/shared/util"
)

// NestingRule limits how deep components sit below app/ or pages/.
type NestingRule struct {
	root     string
	severity diagnostics.Severity
	maxDepth int
}

func NewNestingRule(root string, severity diagnostics.Severity, maxDepth int) *NestingRule {
	return &NestingRule{root: root, severity: severity, maxDepth: maxDepth}
}

func (r *NestingRule) Name() string { return RuleComponentNestingDepth }

func (r *NestingRule) Check(file string, sink ports.DiagnosticSink) {
	depth, ok := RoutingDepth(util.RelativeSlashPath(file, r.root))
	if !ok || depth <= r.maxDepth {
		return
	}
	sink.Add(diagnostics.Diagnostic{
		Severity: r.severity,
		Rule:     RuleComponentNestingDepth,
		Message:  fmt.Sprintf("Component nesting depth %d exceeds maximum of %d", depth, r.maxDepth),
		File:     file,
	})
}

// RoutingDepth counts the segments, file name included, after the first
// app/ directory, or pages/ when there is no app/.
func RoutingDepth(rel string) (int, bool) {
	p := "/" + strings.TrimPrefix(rel, "/")
	var rest string
	if i := strings.Index(p, "/app/"); i >= 0 {
		rest = p[i+len("/app/"):]
	} else if i := strings.Index(p, "/pages/"); i >= 0 {
		rest = p[i+len("/pages/"):]
	} else {
		return 0, false
	}

	depth := 0
	for _, seg := range strings.Split(rest, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth, true
}
