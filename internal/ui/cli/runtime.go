package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"layoutlint/internal/core/app"
	"layoutlint/internal/core/config"
	"layoutlint/internal/core/errors"
	"layoutlint/internal/shared/observability"
	"layoutlint/internal/shared/util"
	"layoutlint/internal/ui/report"
)

const shutdownTimeout = 5 * time.Second

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv := &invocation{stdout: stdout, stderr: stderr}
	cmd := newRootCommand(inv)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return exitUsage
	}
	return inv.code
}

func (inv *invocation) lint(ctx context.Context, path string, format report.Format, opts cliOptions) int {
	cleanupLogs := configureLogging(inv.stderr, opts.ui, opts.verbose)
	defer cleanupLogs()

	shutdownTracing, err := observability.SetupTracing(ctx, opts.otlpEndpoint)
	if err != nil {
		slog.Warn("tracing disabled", "endpoint", opts.otlpEndpoint, "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	root := util.Canonicalize(path)
	load := func() *config.Config { return loadConfig(opts.configPath, root) }

	if opts.watch || opts.ui {
		return inv.watch(ctx, root, load, format, opts)
	}

	res, err := app.NewLinter(root, load()).Run(ctx)
	if err != nil {
		slog.Error("lint failed", "root", root, "code", errors.CodeOf(err), "error", err)
		return exitUsage
	}
	if err := inv.emit(root, format, opts.output, res); err != nil {
		slog.Error("failed to write report", "error", err)
		return exitUsage
	}
	return exitCodeFor(res)
}

func (inv *invocation) watch(ctx context.Context, root string, load app.ConfigLoader, format report.Format, opts cliOptions) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := app.NewHealthService()
	if opts.metricsAddr != "" {
		srv := NewObservabilityServer(opts.metricsAddr, health)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "addr", opts.metricsAddr, "error", err)
			return exitUsage
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				slog.Warn("observability server shutdown failed", "error", err)
			}
		}()
	}

	record := func(res *app.Result, err error) {
		health.Record(res, err)
		if err != nil {
			slog.Error("lint failed", "root", root, "error", err)
		}
	}

	if opts.ui {
		onRun := func(res *app.Result, err error) {
			record(res, err)
			if err == nil && opts.output != "" {
				if werr := inv.emit(root, format, opts.output, res); werr != nil {
					slog.Error("failed to write report", "error", werr)
				}
			}
		}
		if err := runUI(ctx, root, load, opts.watch, watchOptions(opts.output), onRun); err != nil {
			slog.Error("failed to run UI", "error", err)
			return exitUsage
		}
		return exitOK
	}

	onRun := func(res *app.Result, err error) {
		record(res, err)
		if err != nil {
			return
		}
		if werr := inv.emit(root, format, opts.output, res); werr != nil {
			slog.Error("failed to write report", "error", werr)
		}
	}
	if err := app.Watch(ctx, root, load, watchOptions(opts.output), onRun); err != nil {
		slog.Error("watch failed", "root", root, "error", err)
		return exitUsage
	}
	return exitOK
}

// watchOptions keeps the report file from retriggering the run that wrote it.
func watchOptions(output string) app.WatchOptions {
	if output == "" {
		return app.WatchOptions{}
	}
	path := filepath.Join(util.Canonicalize(filepath.Dir(output)), filepath.Base(output))
	return app.WatchOptions{IgnoreFiles: []string{path}}
}

// emit renders res to the --output file, or to stdout when none is set.
func (inv *invocation) emit(root string, format report.Format, output string, res *app.Result) error {
	r := report.NewReport(res.Stats.RunID, root, res.Stats.Files, res.Diagnostics.Diagnostics())
	if output != "" {
		if err := report.WriteFile(output, format, r); err != nil {
			return err
		}
		slog.Info("report written", "path", output, "format", format)
		return nil
	}
	return report.Render(inv.stdout, format, r)
}

func exitCodeFor(res *app.Result) int {
	if res.Diagnostics.HasErrors() {
		return exitLint
	}
	return exitOK
}

func (inv *invocation) initConfig(dir string, format config.Format, force bool) int {
	if !util.IsDir(dir) {
		fmt.Fprintf(inv.stderr, "error: %s is not a directory\n", dir)
		return exitUsage
	}

	path := filepath.Join(dir, config.FileNameFor(format))
	if _, err := os.Lstat(path); err == nil && !force {
		fmt.Fprintf(inv.stderr, "error: %s already exists (use --force to overwrite)\n", path)
		return exitLint
	}

	data, err := config.Encode(config.StarterConfig(), format)
	if err != nil {
		fmt.Fprintf(inv.stderr, "error: %v\n", err)
		return exitLint
	}
	if err := util.WriteFileWithDirs(path, data, 0o644); err != nil {
		fmt.Fprintf(inv.stderr, "error: write %s: %v\n", path, err)
		return exitLint
	}

	fmt.Fprintf(inv.stdout, "Created %s\n", path)
	return exitOK
}

func parseConfigFormat(s string) (config.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return config.FormatJSON, nil
	case "yaml", "yml":
		return config.FormatYAML, nil
	case "toml":
		return config.FormatTOML, nil
	default:
		return "", errors.AddContext(errors.Newf(errors.CodeNotSupported, "unknown config format %q; expected json, yaml or toml", s), errors.CtxFormat, s)
	}
}

// loadConfig never fails: a missing, unreadable or invalid config falls back
// to the built-in defaults.
func loadConfig(path, root string) *config.Config {
	if path == "" {
		found, ok := config.Discover(root)
		if !ok {
			slog.Debug("no config file found, using defaults", "root", root)
			return config.DefaultConfig()
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", path, "error", err)
		return config.DefaultConfig()
	}
	slog.Debug("config loaded", "path", path)
	return cfg
}

func configureLogging(w io.Writer, uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := w
	closeFn := func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(w, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if fi, err := os.Lstat(logPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
			fmt.Fprintf(w, "warning: refusing to write logs to symlink path %s\n", logPath)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err == nil {
				output = f
				closeFn = func() { _ = f.Close() }
			} else {
				fmt.Fprintf(w, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "layoutlint", "layoutlint.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "layoutlint", "layoutlint.log")
	}

	return "layoutlint.log"
}
