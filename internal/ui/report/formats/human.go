package formats

import (
	"fmt"
	"io"
	"strconv"

	"layoutlint/internal/core/diagnostics"

	"github.com/charmbracelet/lipgloss"
)

type humanStyles struct {
	err     lipgloss.Style
	warn    lipgloss.Style
	rule    lipgloss.Style
	arrow   lipgloss.Style
	ok      lipgloss.Style
	summary lipgloss.Style
}

func newHumanStyles(r *lipgloss.Renderer) humanStyles {
	return humanStyles{
		err:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		rule:    r.NewStyle().Foreground(lipgloss.Color("8")),
		arrow:   r.NewStyle().Foreground(lipgloss.Color("12")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		summary: r.NewStyle().Bold(true),
	}
}

// WriteHuman prints one block per diagnostic followed by a summary line.
// Colors are dropped when w is not a terminal.
func WriteHuman(w io.Writer, r Report) error {
	st := newHumanStyles(lipgloss.NewRenderer(w))

	for _, d := range r.Diagnostics {
		label := st.warn.Render("warning")
		if d.Severity == diagnostics.SeverityError {
			label = st.err.Render("error")
		}
		loc := relativeURI(r.Root, d.File)
		if d.Line > 0 {
			loc += ":" + strconv.Itoa(d.Line)
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s\n  %s %s\n\n",
			label, d.Message, st.rule.Render("["+d.Rule+"]"), st.arrow.Render("-->"), loc); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, summaryLine(st, r))
	return err
}

func summaryLine(st humanStyles, r Report) string {
	switch {
	case r.Errors > 0:
		return st.err.Render("✗") + " " + st.summary.Render(fmt.Sprintf("%d error(s), %d warning(s) found", r.Errors, r.Warnings))
	case r.Warnings > 0:
		return st.warn.Render("⚠") + " " + st.summary.Render(fmt.Sprintf("%d warning(s) found", r.Warnings))
	default:
		return st.ok.Render("✓") + " " + st.summary.Render("No issues found!")
	}
}
