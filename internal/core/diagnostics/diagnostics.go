package diagnostics

import (
	"fmt"
	"strings"
)

// Severity is the rule-wide level attached to every diagnostic a rule emits.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
	SeverityOff   Severity = "off"
)

// ParseSeverity accepts the config spellings, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	case "off", "none", "disabled":
		return SeverityOff, nil
	default:
		return "", fmt.Errorf("unknown severity %q; expected warn, error or off", s)
	}
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// Enabled reports whether a rule with this severity should run at all.
func (s Severity) Enabled() bool {
	return s == SeverityWarn || s == SeverityError
}

// Diagnostic is a single violation. Line is 1-based; zero means unknown.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
}

// Location renders "file" or "file:line".
func (d Diagnostic) Location() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	return d.File
}

// Collection is the append-only sink owned by a single lint run.
type Collection struct {
	items []Diagnostic
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) Add(d Diagnostic) {
	c.items = append(c.items, d)
}

// Diagnostics returns a copy in emission order.
func (c *Collection) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Len() int {
	return len(c.items)
}

func (c *Collection) ErrorCount() int {
	return c.count(SeverityError)
}

func (c *Collection) WarningCount() int {
	return c.count(SeverityWarn)
}

func (c *Collection) HasErrors() bool {
	return c.ErrorCount() > 0
}

func (c *Collection) count(sev Severity) int {
	n := 0
	for _, d := range c.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// CountByRule groups diagnostics per rule id.
func (c *Collection) CountByRule() map[string]int {
	out := make(map[string]int)
	for _, d := range c.items {
		out[d.Rule]++
	}
	return out
}
