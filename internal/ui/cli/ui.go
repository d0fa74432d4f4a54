package cli

import (
	"fmt"
	"time"

	"layoutlint/internal/core/app"
	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/shared/util"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

const headerHeight = 4

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

// resultMsg carries the outcome of one lint run into the program.
type resultMsg struct {
	result *app.Result
	err    error
}

type model struct {
	list       list.Model
	root       string
	watching   bool
	runs       int
	files      int
	errors     int
	warnings   int
	lastErr    error
	lastUpdate time.Time
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.list.FilterState() != list.Filtering) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-headerHeight)
	case resultMsg:
		m.runs++
		m.lastUpdate = time.Now()
		m.lastErr = msg.err
		if msg.err != nil || msg.result == nil {
			return m, nil
		}
		diags := msg.result.Diagnostics
		m.files = msg.result.Stats.Files
		m.errors = diags.ErrorCount()
		m.warnings = diags.WarningCount()
		return m, m.list.SetItems(diagnosticItems(m.root, diags.Diagnostics()))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	mode := "single run"
	if m.watching {
		mode = "watching"
	}
	status := statusStyle.Render(fmt.Sprintf("%s | %s | %d files | run %d | last update %s",
		m.root, mode, m.files, m.runs, m.lastUpdate.Format("15:04:05")))

	var summary string
	switch {
	case m.lastErr != nil:
		summary = errorStyle.Render("✗ run failed: " + m.lastErr.Error())
	case m.runs == 0:
		summary = statusStyle.Render("linting...")
	case m.errors == 0 && m.warnings == 0:
		summary = successStyle.Render("✓ No issues found!")
	default:
		summary = fmt.Sprintf("%s | %s",
			errorStyle.Render(fmt.Sprintf("%d error(s)", m.errors)),
			warnStyle.Render(fmt.Sprintf("%d warning(s)", m.warnings)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("layoutlint"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func diagnosticItems(root string, diags []diagnostics.Diagnostic) []list.Item {
	items := make([]list.Item, 0, len(diags))
	for _, d := range diags {
		loc := util.RelativeSlashPath(d.File, root)
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Line)
		}
		items = append(items, item{
			title: fmt.Sprintf("%s: %s", d.Severity, d.Message),
			desc:  fmt.Sprintf("%s [%s]", loc, d.Rule),
		})
	}
	return items
}

func initialModel(root string, watching bool) model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Diagnostics"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		root:       root,
		watching:   watching,
		lastUpdate: time.Now(),
	}
}
