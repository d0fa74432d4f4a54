package app

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"layoutlint/internal/core/errors"
	"layoutlint/internal/engine/pattern"
)

// IgnoredDirs are never walked, whatever the configuration says.
var IgnoredDirs = []string{"node_modules", ".next", ".git", "dist", "build", "coverage", "out", ".turbo"}

// SourceExtensions are the file types handed to the rules.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

var sourceExtensionSet = func() map[string]bool {
	out := make(map[string]bool, len(SourceExtensions))
	for _, ext := range SourceExtensions {
		out[ext] = true
	}
	return out
}()

// IsSourceFile reports whether path has a lintable extension. Extensions are
// case-sensitive, so Page.TSX is not linted.
func IsSourceFile(path string) bool {
	return sourceExtensionSet[filepath.Ext(path)]
}

// isFile follows symlinks, so a linked source file is scanned like a regular
// one. Links to directories are not descended into.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ExcludedDirs combines the built-in ignore list with configured globs.
func ExcludedDirs(extra []string) []string {
	out := make([]string, 0, len(IgnoredDirs)+len(extra))
	out = append(out, IgnoredDirs...)
	return append(out, extra...)
}

// ScanDirectory lists source files under root in lexical order. Directories
// whose base name matches an ignored name or one of excludeDirs are skipped.
// An unreadable root fails the scan; unreadable subdirectories are logged.
func ScanDirectory(root string, excludeDirs []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		code := errors.CodeIO
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read project root"), errors.CtxPath, root)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeIO, "project root is not a directory"), errors.CtxPath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read project root"), errors.CtxPath, root)
	}

	excludes := pattern.CompileAll(ExcludedDirs(excludeDirs))
	for _, err := range excludes.Errs() {
		slog.Warn("ignoring invalid exclude pattern", "error", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && excludes.MatchAnyName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSourceFile(path) && isFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "walk project"), errors.CtxPath, root)
	}
	return files, nil
}
