package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func waitFor(t *testing.T, changed <-chan []string, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case paths := <-changed:
			if slices.Contains(paths, want) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for change to %s", want)
		}
	}
}

func TestNewWatcher_RejectsNilCallback(t *testing.T) {
	w, err := NewWatcher(100*time.Millisecond, nil, nil)
	if err == nil {
		t.Fatal("expected error for nil callback")
	}
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestNewWatcher_RejectsInvalidExcludeGlob(t *testing.T) {
	if _, err := NewWatcher(time.Millisecond, []string{"dist["}, func([]string) {}); err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}

	changedFiles := make(chan []string, 8)
	w, err := NewWatcher(100*time.Millisecond, []string{"node_modules"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	report := filepath.Join(tmpDir, "layoutlint-report.json")
	w.SetIgnored([]string{report})

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	page := filepath.Join(tmpDir, "page.tsx")
	if err := os.WriteFile(page, []byte("export default function Page() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changedFiles, page, 2*time.Second)

	ignored := filepath.Join(tmpDir, "node_modules", "index.ts")
	if err := os.WriteFile(ignored, []byte("export {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(report, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if p == ignored || p == report {
				t.Errorf("ignored file triggered event: %s", p)
			}
		}
	case <-time.After(500 * time.Millisecond):
	}

	// Companion files of any extension are reported.
	story := filepath.Join(tmpDir, "User-Story.us.md")
	if err := os.WriteFile(story, []byte("# story"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changedFiles, story, 2*time.Second)

	// New directories are watched recursively once created.
	subdir := filepath.Join(tmpDir, "components")
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(subdir, "button.tsx")
	if err := os.WriteFile(nested, []byte("export const Button = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changedFiles, nested, 2*time.Second)
}

func TestWatcher_IdenticalContentIsIgnored(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "layout.tsx")
	content := []byte("export default function Layout() {}")
	if err := os.WriteFile(target, content, 0o644); err != nil {
		t.Fatal(err)
	}

	changedFiles := make(chan []string, 8)
	w, err := NewWatcher(50*time.Millisecond, nil, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(target, content, 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case paths := <-changedFiles:
		t.Fatalf("unexpected event for identical content: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(target, []byte("export default function Layout() { return null }"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changedFiles, target, time.Second)
}

func TestWatcher_RenameTriggersChange(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 8)
	w, err := NewWatcher(100*time.Millisecond, nil, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	oldPath := filepath.Join(tmpDir, "old.ts")
	newPath := filepath.Join(tmpDir, "new.ts")
	if err := os.WriteFile(oldPath, []byte("export {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changedFiles, newPath, 2*time.Second)
}

func TestWatcher_Ignored(t *testing.T) {
	w, err := NewWatcher(10*time.Millisecond, nil, func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.shouldExcludeFile("notes.md") {
		t.Fatal("expected every file to pass without ignores")
	}

	w.SetIgnored([]string{"/repo/out/../report.sarif", " "})
	if !w.shouldExcludeFile("/repo/report.sarif") {
		t.Fatal("expected cleaned ignored path to match")
	}
	if w.shouldExcludeFile("/repo/app/Button.stories.mdx") {
		t.Fatal("expected story file to pass")
	}
	if w.shouldExcludeFile("/repo/.layoutlintrc.json") {
		t.Fatal("expected config file to pass")
	}
}
