package watcher

import (
	"crypto/sha256"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"layoutlint/internal/engine/pattern"
	"layoutlint/internal/shared/observability"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports debounced batches of changed files under a set of roots.
// A write that leaves a file's content unchanged is not reported.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	debounce    time.Duration
	excludeDirs pattern.Set
	ignored     map[string]bool
	onChange    func([]string)
	callbackMu  sync.Mutex

	pending   map[string]time.Time
	hashes    map[string][sha256.Size]byte
	pendingMu sync.Mutex
	timer     *time.Timer
}

// NewWatcher skips directories whose base name matches any of excludeDirs.
func NewWatcher(debounce time.Duration, excludeDirs []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}

	dirs := pattern.CompileAll(excludeDirs)
	if errs := dirs.Errs(); len(errs) > 0 {
		return nil, errs[0]
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:   fsw,
		debounce:    debounce,
		excludeDirs: dirs,
		onChange:    onChange,
		pending:     make(map[string]time.Time),
		hashes:      make(map[string][sha256.Size]byte),
	}, nil
}

// SetIgnored stops the given files from being reported, such as a report the
// caller writes inside a watched root. Call it before Watch.
func (w *Watcher) SetIgnored(paths []string) {
	w.ignored = make(map[string]bool, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			w.ignored[filepath.Clean(p)] = true
		}
	}
}

func (w *Watcher) SetDebounce(debounce time.Duration) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.debounce = debounce
}

func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if err := w.watchRecursive(path, false); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

// watchRecursive adds every non-excluded directory under root. When enqueue
// is set, files already present are reported as changes.
func (w *Watcher) watchRecursive(root string, enqueue bool) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}

		if w.shouldExcludeFile(path) {
			return nil
		}
		if enqueue {
			w.scheduleChange(path)
		} else {
			w.remember(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Has(fsnotify.Create) {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !w.shouldExcludeDir(event.Name) {
						if err := w.watchRecursive(event.Name, true); err != nil {
							slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if w.shouldExcludeFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		if w.contentChanged(path) {
			paths = append(paths, path)
		}
	}
	w.pending = make(map[string]time.Time)
	w.pendingMu.Unlock()

	if len(paths) > 0 {
		sort.Strings(paths)
		w.callbackMu.Lock()
		defer w.callbackMu.Unlock()
		w.onChange(paths)
	}
}

// contentChanged updates the stored hash for path. Missing files always
// count as changed. Callers hold pendingMu.
func (w *Watcher) contentChanged(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		delete(w.hashes, path)
		return true
	}
	sum := sha256.Sum256(data)
	prev, seen := w.hashes[path]
	w.hashes[path] = sum
	return !seen || prev != sum
}

func (w *Watcher) remember(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	w.pendingMu.Lock()
	w.hashes[path] = sha256.Sum256(data)
	w.pendingMu.Unlock()
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	return w.excludeDirs.MatchAnyName(filepath.Base(path))
}

func (w *Watcher) shouldExcludeFile(path string) bool {
	return w.ignored[filepath.Clean(path)]
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
