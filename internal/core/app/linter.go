package app

import (
	"context"
	"log/slog"
	"time"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/ports"
	"layoutlint/internal/engine/graph"
	"layoutlint/internal/engine/parser"
	"layoutlint/internal/engine/resolver"
	"layoutlint/internal/engine/rules"
	"layoutlint/internal/shared/observability"
	"layoutlint/internal/shared/util"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Linter lints one project directory. It keeps no state between runs.
type Linter struct {
	root string
	cfg  *config.Config
}

// RunStats summarizes one run.
type RunStats struct {
	RunID        string
	Files        int
	Rules        int
	GraphTargets int
	GraphEdges   int
	Duration     time.Duration
}

// Result is the output of a run: the diagnostics in emission order and stats.
type Result struct {
	Diagnostics *diagnostics.Collection
	Stats       RunStats
}

// NewLinter canonicalizes root. A nil cfg selects the built-in defaults.
func NewLinter(root string, cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Linter{root: util.Canonicalize(root), cfg: cfg}
}

func (l *Linter) Root() string { return l.root }

func (l *Linter) Config() *config.Config { return l.cfg }

// Run walks the project, builds the import graph when a rule needs it, and
// evaluates every file against every enabled rule. Only an unreadable root
// or a cancelled context fails a run.
func (l *Linter) Run(ctx context.Context) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "linter.Run", trace.WithAttributes(attribute.String("root", l.root)))
	defer span.End()

	start := time.Now()
	stats := RunStats{RunID: uuid.NewString()}
	logger := slog.With("run_id", stats.RunID)

	files, err := l.walk(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	stats.Files = len(files)
	observability.FilesScanned.Set(float64(len(files)))

	set := rules.NewRuleSet(l.cfg, l.root)
	stats.Rules = set.Len()

	var index ports.ImportIndex
	if set.NeedsImportGraph() {
		g := l.buildGraph(ctx, files)
		stats.GraphTargets = g.Len()
		stats.GraphEdges = g.EdgeCount()
		index = g
	}

	sink := diagnostics.NewCollection()
	if err := l.evaluate(ctx, files, set.Bind(index), sink); err != nil {
		span.RecordError(err)
		return nil, err
	}

	stats.Duration = time.Since(start)
	observability.RunsTotal.Inc()
	observability.RunDuration.Observe(stats.Duration.Seconds())
	for _, d := range sink.Diagnostics() {
		observability.DiagnosticsTotal.WithLabelValues(d.Rule, string(d.Severity)).Inc()
	}
	span.SetAttributes(
		attribute.String("run_id", stats.RunID),
		attribute.Int("files", stats.Files),
		attribute.Int("diagnostics", sink.Len()),
	)

	logger.Info("lint finished",
		"files", stats.Files,
		"rules", stats.Rules,
		"diagnostics", sink.Len(),
		"errors", sink.ErrorCount(),
		"warnings", sink.WarningCount(),
		"duration", stats.Duration)
	if sink.Len() > 0 {
		logger.Debug("diagnostics by rule", "counts", sink.CountByRule())
	}
	return &Result{Diagnostics: sink, Stats: stats}, nil
}

func (l *Linter) walk(ctx context.Context) ([]string, error) {
	_, span := observability.Tracer.Start(ctx, "linter.walk")
	defer span.End()
	defer observePhase("walk", time.Now())

	files, err := ScanDirectory(l.root, l.cfg.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("files", len(files)))
	return files, nil
}

func (l *Linter) buildGraph(ctx context.Context, files []string) *graph.ImportGraph {
	_, span := observability.Tracer.Start(ctx, "linter.buildGraph")
	defer span.End()
	defer observePhase("graph", time.Now())

	g := graph.Build(files, parser.NewExtractor(), resolver.New(l.root, l.cfg.Resolve.Aliases))
	observability.GraphTargets.Set(float64(g.Len()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))
	span.SetAttributes(attribute.Int("targets", g.Len()), attribute.Int("edges", g.EdgeCount()))
	slog.Debug("import graph built", "targets", g.Len(), "edges", g.EdgeCount())
	return g
}

// evaluate visits files in walk order; each file runs through every rule
// before the next file starts.
func (l *Linter) evaluate(ctx context.Context, files []string, fileRules []ports.FileRule, sink ports.DiagnosticSink) error {
	_, span := observability.Tracer.Start(ctx, "linter.evaluate")
	defer span.End()
	defer observePhase("evaluate", time.Now())

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, rule := range fileRules {
			rule.Check(file, sink)
		}
	}
	return nil
}

func observePhase(phase string, start time.Time) {
	elapsed := time.Since(start)
	observability.PhaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
	slog.Debug("phase finished", "phase", phase, "duration", elapsed)
}
