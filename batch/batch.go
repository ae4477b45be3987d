// Package batch drives conversion of a fixed list of input/output pairs.
// Every pair is an independent unit of work: a missing input is skipped, a
// failing pair is recorded, and the remaining pairs still run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meikuraledutech/questgraph"
)

// Loader reads a document from a path.
type Loader interface {
	Load(path string) (any, error)
}

// Writer persists a converted value at a path.
type Writer interface {
	Write(path string, v any) error
}

// Sink receives converted graphs in addition to the output file.
type Sink interface {
	SaveGraph(ctx context.Context, graphID string, g *questgraph.Graph) error
}

// Pair is one input/output conversion. Name identifies the pair in logs,
// reports and the sink.
type Pair struct {
	Name      string
	Input     string
	Output    string
	Converter questgraph.Converter
}

// Status is the outcome of one pair.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result records what happened to one pair. Written is set once the output
// file has been replaced; a pair can be failed with Written set when the
// sink rejects the graph afterwards.
type Result struct {
	Pair     Pair
	Status   Status
	Err      error
	Written  bool
	Nodes    int
	Edges    int
	Duration time.Duration
}

// Report holds one result per pair, in pair order.
type Report struct {
	Results []Result
}

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Converted returns the number of pairs written.
func (r *Report) Converted() int { return r.count(StatusConverted) }

// Skipped returns the number of pairs whose input was missing.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of pairs that failed to load, convert or write.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Err joins the errors of every failed pair, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("%s: %w", res.Pair.Name, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner runs pairs through a Loader, their Converter and a Writer.
type Runner struct {
	Loader  Loader
	Writer  Writer
	Sink    Sink // optional
	Logger  *slog.Logger
	Workers int
}

// Run converts every pair and never stops early on a pair failure. It
// returns an error only when ctx is cancelled; pairs not started by then are
// reported as failed with the context error.
func (r *Runner) Run(ctx context.Context, pairs []Pair) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	report := &Report{Results: make([]Result, len(pairs))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Results[i] = Result{Pair: p, Status: StatusFailed, Err: err}
				logResult(logger, report.Results[i])
				return nil
			}
			res := r.runPair(gctx, logger, p)
			report.Results[i] = res
			logResult(logger, res)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Batch finished.",
		"converted", report.Converted(),
		"skipped", report.Skipped(),
		"failed", report.Failed(),
		"total", len(pairs),
	)
	return report, ctx.Err()
}

func (r *Runner) runPair(ctx context.Context, logger *slog.Logger, p Pair) Result {
	start := time.Now()
	res := Result{Pair: p}
	done := func(s Status, err error) Result {
		res.Status = s
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	if _, err := os.Stat(p.Input); errors.Is(err, os.ErrNotExist) {
		return done(StatusSkipped, &questgraph.MissingInputError{Path: p.Input})
	}

	doc, err := r.Loader.Load(p.Input)
	if err != nil {
		if errors.Is(err, questgraph.ErrMissingInput) {
			return done(StatusSkipped, err)
		}
		return done(StatusFailed, err)
	}

	conv := p.Converter
	if conv == nil {
		conv = questgraph.IdentityConverter
	}
	out, err := conv(doc)
	if err != nil {
		return done(StatusFailed, fmt.Errorf("convert %s: %w", p.Input, err))
	}

	graph, isGraph := out.(*questgraph.Graph)
	if isGraph {
		res.Nodes = len(graph.Nodes)
		res.Edges = len(graph.Edges)
	}

	if err := os.MkdirAll(filepath.Dir(p.Output), 0o755); err != nil {
		return done(StatusFailed, &questgraph.WriteFailureError{Path: p.Output, Err: err})
	}
	if err := r.Writer.Write(p.Output, out); err != nil {
		return done(StatusFailed, err)
	}
	res.Written = true

	if isGraph && r.Sink != nil {
		if err := r.Sink.SaveGraph(ctx, p.Name, graph); err != nil {
			return done(StatusFailed, fmt.Errorf("save %s (output already written): %w", p.Name, err))
		}
	}

	if isGraph {
		if cycle := questgraph.FindCycle(graph); cycle != nil {
			logger.Warn("Quest graph contains a cycle.", "pair", p.Name, "cycle", cycle)
		}
	}
	return done(StatusConverted, nil)
}

func logResult(logger *slog.Logger, res Result) {
	attrs := []any{
		"pair", res.Pair.Name,
		"input", res.Pair.Input,
		"output", res.Pair.Output,
		"status", string(res.Status),
		"duration", res.Duration,
	}
	switch res.Status {
	case StatusConverted:
		if res.Nodes > 0 || res.Edges > 0 {
			attrs = append(attrs, "nodes", res.Nodes, "edges", res.Edges)
		}
		logger.Info("Pair converted.", attrs...)
	case StatusSkipped:
		logger.Warn("Input not found, pair skipped.", append(attrs, "error", res.Err)...)
	default:
		logger.Error("Pair failed.", append(attrs, "error", res.Err)...)
	}
}
