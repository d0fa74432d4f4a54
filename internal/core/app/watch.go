package app

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/watcher"
	"layoutlint/internal/shared/observability"
	"layoutlint/internal/shared/util"
)

const (
	DefaultWatchDebounce    = 300 * time.Millisecond
	DefaultWatchMinInterval = time.Second
)

// ConfigLoader supplies the configuration for each run, so edits to the
// config file apply on the next change.
type ConfigLoader func() *config.Config

// WatchOptions tunes Watch. IgnoreFiles lists files whose changes never
// trigger a run, such as a report written under the root.
type WatchOptions struct {
	Debounce    time.Duration
	MinInterval time.Duration
	IgnoreFiles []string
}

func (o WatchOptions) withDefaults() WatchOptions {
	if o.Debounce <= 0 {
		o.Debounce = DefaultWatchDebounce
	}
	if o.MinInterval <= 0 {
		o.MinInterval = DefaultWatchMinInterval
	}
	return o
}

// Watch runs the linter once, then again after every debounced batch of
// changes under root, until ctx is done. Any file outside the excluded
// directories counts, since companion requirements can name any extension.
// Batches arriving while a run is pending are folded into it. onRun receives
// every outcome. The watcher is rebuilt when a run sees new excluded
// directories.
func Watch(ctx context.Context, root string, load ConfigLoader, opts WatchOptions, onRun func(*Result, error)) error {
	opts = opts.withDefaults()
	root = util.Canonicalize(root)

	trigger := make(chan struct{}, 1)
	var (
		w        *watcher.Watcher
		excludes []string
	)
	defer func() {
		if w != nil {
			_ = w.Close()
		}
	}()

	startWatcher := func(dirs []string) error {
		next, err := watcher.NewWatcher(opts.Debounce, dirs, func(paths []string) {
			slog.Debug("change detected", "files", len(paths))
			select {
			case trigger <- struct{}{}:
			default:
				observability.WatchRerunsSkipped.Inc()
			}
		})
		if err != nil {
			return err
		}
		next.SetIgnored(opts.IgnoreFiles)
		if err := next.Watch([]string{root}); err != nil {
			_ = next.Close()
			return err
		}
		if w != nil {
			_ = w.Close()
		}
		w, excludes = next, dirs
		return nil
	}

	runOnce := func() error {
		linter := NewLinter(root, load())
		res, err := linter.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		onRun(res, err)

		dirs := ExcludedDirs(linter.Config().Exclude.Dirs)
		if w != nil && slices.Equal(dirs, excludes) {
			return nil
		}
		if w == nil {
			if err := startWatcher(dirs); err != nil {
				return err
			}
			slog.Info("watching for changes", "root", root, "debounce", opts.Debounce)
			return nil
		}
		if err := startWatcher(dirs); err != nil {
			slog.Warn("keeping previous watcher", "excludes", dirs, "error", err)
			return nil
		}
		slog.Info("excluded directories changed, watcher rebuilt", "excludes", dirs)
		return nil
	}
	if err := runOnce(); err != nil {
		return err
	}

	limiter := util.NewIntervalLimiter(opts.MinInterval, 1)
	limiter.Allow(1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			if err := limiter.Wait(ctx, 1); err != nil {
				return nil
			}
			if err := runOnce(); err != nil {
				return err
			}
		}
	}
}
