package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harrison/sassglob/internal/filelock"
	"github.com/harrison/sassglob/internal/models"
)

// Output is one expanded stylesheet handed to a Sink.
type Output struct {
	File    *models.SourceFile
	Changed bool
}

// Sink receives expanded stylesheets. Write returns where the file went,
// or "" when nothing was written.
type Sink interface {
	Write(ctx context.Context, out Output) (string, error)
}

// Discard drops every output. Used for dry runs and checks.
type Discard struct{}

// Write implements Sink.
func (Discard) Write(ctx context.Context, out Output) (string, error) {
	return "", ctx.Err()
}

// WriterSink streams expanded contents to a writer, one file after another.
type WriterSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterSink creates a WriterSink around w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write implements Sink.
func (s *WriterSink) Write(ctx context.Context, out Output) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(out.File.Contents); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out.File.Path, err)
	}
	return "-", nil
}

// DirSink mirrors each file under OutDir at its path relative to BaseDir.
type DirSink struct {
	OutDir  string
	BaseDir string
}

// Destination returns the mirrored path for a source file.
func (s *DirSink) Destination(path string) (string, error) {
	rel, err := filepath.Rel(s.BaseDir, path)
	if err != nil {
		return "", fmt.Errorf("failed to map %s under %s: %w", path, s.BaseDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside base dir %s", path, s.BaseDir)
	}
	return filepath.Join(s.OutDir, rel), nil
}

// Write implements Sink. Unchanged files are copied too so the output tree is complete.
func (s *DirSink) Write(ctx context.Context, out Output) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest, err := s.Destination(out.File.Path)
	if err != nil {
		return "", err
	}
	if err := filelock.AtomicWrite(dest, out.File.Contents); err != nil {
		return "", err
	}
	return dest, nil
}

// InPlaceSink rewrites changed files under an exclusive lock.
type InPlaceSink struct{}

// Write implements Sink.
func (InPlaceSink) Write(ctx context.Context, out Output) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !out.Changed {
		return "", nil
	}
	if err := filelock.LockAndWrite(out.File.Path, out.File.Contents); err != nil {
		return "", err
	}
	return out.File.Path, nil
}
