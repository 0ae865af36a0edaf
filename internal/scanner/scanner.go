// Package scanner implements the Scanner façade: the single entry point
// that owns the compiled Pattern Library, Prefilter Automaton, and
// effective configuration, and exposes scan(path) / scan(files) over them.
package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepbrainspace/guardy/internal/config"
	appcontext "github.com/deepbrainspace/guardy/internal/context"
	"github.com/deepbrainspace/guardy/internal/filters"
	"github.com/deepbrainspace/guardy/internal/model"
	"github.com/deepbrainspace/guardy/internal/patterns"
	"github.com/deepbrainspace/guardy/internal/pipeline"
)

// ErrAborted is an internal signal used to record that a scan's context was
// cancelled mid-run. It is folded into ScanResult.Warnings as plain text and
// is never itself returned from Scan or ScanFiles: an aborted scan still
// returns its completed results, not an error.
var ErrAborted = errors.New("scanner: scan aborted")

// StagedFileLister is the external collaborator that knows how to list a
// repository's staged files. The scanning engine never shells out to git
// itself; a caller (e.g. a pre-commit hook, out of scope here) supplies the
// staged file list through this interface. Listers may return either
// paths relative to root or absolute paths; see ScanFiles.
type StagedFileLister interface {
	StagedFiles() ([]string, error)
}

// Scanner owns the compiled, immutable Pattern Library and Prefilter
// Automaton plus the effective configuration, and is safe to call
// concurrently from many goroutines: every field is built once at
// construction and never mutated afterward, so concurrent Scan/ScanFiles
// calls share them by reference without locking.
type Scanner struct {
	library  *patterns.Library
	pipeline *pipeline.DirectoryPipeline
}

// New compiles the Pattern Library and builds the filter/pipeline stack from
// cfg. The returned Scanner is ready for concurrent use.
func New(cfg *config.Config) (*Scanner, error) {
	library, err := patterns.Build(cfg.Detectors)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern library: %w", err)
	}

	dirFilters, err := filters.NewDirectoryFilters(cfg)
	if err != nil {
		return nil, fmt.Errorf("building directory filters: %w", err)
	}
	contentFilters := filters.NewContentFilters(
		library.Detectors(),
		cfg.EnableEntropyAnalysis,
		cfg.MinEntropyThreshold,
		cfg.RespectIgnoreComments,
	)

	filePipeline := pipeline.New(dirFilters, contentFilters, int64(cfg.MaxFileSizeMB)*1024*1024)
	dirPipeline, err := pipeline.NewDirectoryPipeline(filePipeline, cfg)
	if err != nil {
		return nil, fmt.Errorf("building directory pipeline: %w", err)
	}

	return &Scanner{library: library, pipeline: dirPipeline}, nil
}

// Library returns the compiled Pattern Library, for callers that need to
// introspect detector metadata (e.g. a CLI's "list detectors" command).
func (s *Scanner) Library() *patterns.Library { return s.library }

// Scan walks root and returns the aggregated ScanResult. ctx cancellation
// trips the Directory Pipeline's abort flag between files, not mid-file; a
// cancelled scan still returns every result completed so far, with a
// warning recording the cancellation, never an error.
func (s *Scanner) Scan(ctx context.Context, root string) (*model.ScanResult, error) {
	abort := &pipeline.Abort{}
	stop := bridgeCancellation(ctx, abort)
	defer stop()

	logger := appcontext.AddLogger(ctx).Logger()
	result, err := s.pipeline.Scan(root, abort, logger)
	if err != nil {
		return nil, err
	}
	recordCancellation(ctx, result)
	return result, nil
}

// ScanFiles runs an explicit file list (e.g. a staged-commit's changed
// files) through the Directory and Content Filters, bypassing traversal and
// ignore-file discovery. Entries in files may be given relative to root or
// as absolute paths (as a git-backed StagedFileLister typically returns);
// either form is resolved correctly for I/O and for the relative FilePath
// recorded on each result.
func (s *Scanner) ScanFiles(ctx context.Context, root string, files []string) *model.ScanResult {
	abort := &pipeline.Abort{}
	stop := bridgeCancellation(ctx, abort)
	defer stop()

	logger := appcontext.AddLogger(ctx).Logger()
	result := s.pipeline.ScanFiles(root, files, abort, logger)
	recordCancellation(ctx, result)
	return result
}

// ScanStaged queries lister for the staged file set and runs ScanFiles over
// it, giving callers (e.g. a pre-commit hook) a one-call path from "what
// changed" to a ScanResult without the scanner ever invoking git itself.
func (s *Scanner) ScanStaged(ctx context.Context, root string, lister StagedFileLister) (*model.ScanResult, error) {
	files, err := lister.StagedFiles()
	if err != nil {
		return nil, fmt.Errorf("listing staged files: %w", err)
	}
	return s.ScanFiles(ctx, root, files), nil
}

// bridgeCancellation signals abort when ctx is done, and returns a stop
// function that must be called (via defer) once the scan returns, so the
// bridging goroutine doesn't leak past the scan's lifetime.
func bridgeCancellation(ctx context.Context, abort *pipeline.Abort) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			abort.Signal()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func recordCancellation(ctx context.Context, result *model.ScanResult) {
	if ctx.Err() == nil {
		return
	}
	result.Warnings = append(result.Warnings, fmt.Errorf("%w: %v", ErrAborted, ctx.Err()).Error())
}
