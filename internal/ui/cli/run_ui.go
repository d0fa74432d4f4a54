package cli

import (
	"context"
	"log/slog"

	"layoutlint/internal/core/app"

	tea "github.com/charmbracelet/bubbletea"
)

// runUI shows the diagnostics browser. With watch set it keeps re-linting
// until the program exits; otherwise it shows a single run.
func runUI(ctx context.Context, root string, load app.ConfigLoader, watch bool, watchOpts app.WatchOptions, onRun func(*app.Result, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := initialModel(root, watch)
	p := tea.NewProgram(m, tea.WithAltScreen())

	send := func(res *app.Result, err error) {
		onRun(res, err)
		p.Send(resultMsg{result: res, err: err})
	}

	go func() {
		if !watch {
			send(app.NewLinter(root, load()).Run(ctx))
			return
		}
		if err := app.Watch(ctx, root, load, watchOpts, send); err != nil {
			slog.Error("watch failed", "root", root, "error", err)
			p.Send(resultMsg{err: err})
		}
	}()

	_, err := p.Run()
	return err
}
