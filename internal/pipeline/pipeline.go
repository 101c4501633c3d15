// Package pipeline runs the expander over many stylesheets with bounded
// concurrency and hands the results to a Sink.
//
// Files are read and expanded in parallel. Outputs are written afterwards in
// input order so streamed output stays deterministic.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/harrison/sassglob/internal/expander"
	"github.com/harrison/sassglob/internal/models"
	"golang.org/x/sync/errgroup"
)

// Logger receives pipeline events.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
	LogFileResult(result models.FileResult)
	LogProgress(done, total int)
}

type noopLogger struct{}

func (noopLogger) LogDebug(string)                 {}
func (noopLogger) LogWarn(string)                  {}
func (noopLogger) LogFileResult(models.FileResult) {}
func (noopLogger) LogProgress(int, int)            {}

// Pipeline expands stylesheets and writes them to a Sink.
type Pipeline struct {
	Expander *expander.Expander
	Sink     Sink
	Logger   Logger

	// MaxConcurrency bounds parallel expansion (0 = number of CPUs)
	MaxConcurrency int
	// FailFast stops scheduling files after the first failure
	FailFast bool
}

// New creates a Pipeline. A nil sink discards output; a nil logger is silent.
func New(exp *expander.Expander, sink Sink, log Logger) *Pipeline {
	return &Pipeline{Expander: exp, Sink: sink, Logger: log}
}

func (p *Pipeline) sink() Sink {
	if p.Sink == nil {
		return Discard{}
	}
	return p.Sink
}

func (p *Pipeline) log() Logger {
	if p.Logger == nil {
		return noopLogger{}
	}
	return p.Logger
}

func (p *Pipeline) limit() int {
	if p.MaxConcurrency > 0 {
		return p.MaxConcurrency
	}
	return runtime.NumCPU()
}

// job carries one file between the expand and write phases.
type job struct {
	file   *models.SourceFile
	result models.FileResult
	start  time.Time
	done   bool
}

// Run expands every path and writes the outputs in input order.
//
// A failing file is recorded in the summary and the run continues, unless
// FailFast is set, in which case no further files are scheduled or written and
// the first failure is returned. Cancelling ctx stops scheduling new files and
// returns ctx.Err(). Files never started are absent from the summary's Results.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*models.RunSummary, error) {
	start := time.Now()
	summary := &models.RunSummary{TotalFiles: len(paths)}
	if p.Expander == nil {
		return summary, errors.New("pipeline has no expander")
	}

	jobs := make([]job, len(paths))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit())

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			j := &jobs[i]
			j.start = time.Now()
			j.file, j.result = p.expand(path)
			j.done = true

			p.log().LogProgress(int(completed.Add(1)), len(paths))
			if j.result.Failed() && p.FailFast {
				return j.result.Error
			}
			return nil
		})
	}

	firstErr := g.Wait()

	for i := range jobs {
		j := &jobs[i]
		if !j.done {
			continue
		}
		if !j.result.Failed() && (firstErr == nil || !p.FailFast) && ctx.Err() == nil {
			p.emit(ctx, j.file, &j.result)
			if j.result.Failed() && p.FailFast && firstErr == nil {
				firstErr = j.result.Error
			}
		}
		j.result.Duration = time.Since(j.start)
		p.log().LogFileResult(j.result)
		summary.Add(j.result)
	}

	summary.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if p.FailFast && firstErr != nil {
		return summary, firstErr
	}
	return summary, nil
}

// Process expands and writes a single file.
func (p *Pipeline) Process(ctx context.Context, path string) models.FileResult {
	start := time.Now()
	file, result := p.expand(path)
	if !result.Failed() {
		p.emit(ctx, file, &result)
	}
	result.Duration = time.Since(start)
	p.log().LogFileResult(result)
	return result
}

// ProcessReader expands a buffer read from r as though it were the file at
// name, which decides the dialect and the directory searched first.
func (p *Pipeline) ProcessReader(ctx context.Context, name string, r io.Reader) models.FileResult {
	start := time.Now()
	result := models.FileResult{Path: name}

	data, err := io.ReadAll(r)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input for %s: %w", name, err)
		return result
	}
	file, err := models.NewSourceFile(name, data)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve %s: %w", name, err)
		return result
	}
	result.Path = file.Path

	p.expandFile(file, &result)
	if !result.Failed() {
		p.emit(ctx, file, &result)
	}
	result.Duration = time.Since(start)
	p.log().LogFileResult(result)
	return result
}

func (p *Pipeline) expand(path string) (*models.SourceFile, models.FileResult) {
	result := models.FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read %s: %w", path, err)
		return nil, result
	}
	file, err := models.NewSourceFile(path, data)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve %s: %w", path, err)
		return nil, result
	}
	result.Path = file.Path

	p.expandFile(file, &result)
	return file, result
}

func (p *Pipeline) expandFile(file *models.SourceFile, result *models.FileResult) {
	result.BytesIn = len(file.Contents)

	res, err := p.Expander.Expand(file)
	if err != nil {
		result.Error = err
		return
	}

	result.Changed = res.Changed
	result.Directives = len(res.Expansions)
	result.Targets = res.Targets()
	result.Empty = res.Empty()
	result.BytesOut = len(file.Contents)

	for _, pattern := range result.Empty {
		p.log().LogWarn(fmt.Sprintf("%s: %q matched no stylesheets", file.Path, pattern))
	}
}

func (p *Pipeline) emit(ctx context.Context, file *models.SourceFile, result *models.FileResult) {
	dest, err := p.sink().Write(ctx, Output{File: file, Changed: result.Changed})
	if err != nil {
		result.Error = err
		return
	}
	result.Output = dest
	if dest != "" {
		p.log().LogDebug(fmt.Sprintf("%s -> %s", file.Path, dest))
	}
}
