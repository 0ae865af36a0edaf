// Package pipeline implements the File Pipeline and the Directory
// Pipeline: the per-file processing contract and the traversal/dispatch
// layer that drives it over a tree or an explicit file list.
package pipeline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deepbrainspace/guardy/internal/filters"
	"github.com/deepbrainspace/guardy/internal/model"
)

// errFileGrewPastLimit is returned when a file's content exceeds the Size
// Filter's limit by the time it is actually read, which only happens if the
// file was modified concurrently with the scan.
var errFileGrewPastLimit = errors.New("pipeline: file exceeded size limit during read")

// bufferPool hands out reusable read buffers keyed by goroutine, not by
// thread (Go has no stable thread identity): sync.Pool gives each buffer
// back to whichever goroutine next calls Get, and a []byte's capacity only
// grows across reuse, never shrinks, since readAll grows it by appending
// rather than reallocating from scratch.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{New: func() any {
			b := make([]byte, 0, 64*1024)
			return &b
		}},
	}
}

func (p *bufferPool) get() *[]byte { return p.pool.Get().(*[]byte) }
func (p *bufferPool) put(b *[]byte) {
	*b = (*b)[:0]
	p.pool.Put(b)
}

// FilePipeline implements the per-file contract: process(path) -> FileResult.
type FilePipeline struct {
	dirFilters     *filters.DirectoryFilters
	contentFilters *filters.ContentFilters
	maxFileSize    int64
	bufs           *bufferPool
}

// New builds a File Pipeline over the already-constructed filter stages.
func New(dirFilters *filters.DirectoryFilters, contentFilters *filters.ContentFilters, maxFileSizeBytes int64) *FilePipeline {
	return &FilePipeline{
		dirFilters:     dirFilters,
		contentFilters: contentFilters,
		maxFileSize:    maxFileSizeBytes,
		bufs:           newBufferPool(),
	}
}

// Outcome reports what happened to one candidate path: exactly one of
// Result or SkipReason is meaningful, discriminated by Skipped. A skipped
// file never produces a FileResult: the skip decision is made before a
// FileResult is ever constructed.
type Outcome struct {
	Result     model.FileResult
	Skipped    bool
	SkipReason string
}

// Process runs the full per-file contract for one path. relPath is used for
// the Path Filter and for every coordinate in the resulting matches; absPath
// is used for the actual file I/O, so callers scanning a tree rooted
// somewhere other than the working directory can keep relative, portable
// output while still reading from disk correctly.
func (fp *FilePipeline) Process(absPath, relPath string) Outcome {
	start := time.Now()

	if d := fp.dirFilters.CheckPath(relPath); d.ShouldSkip() {
		return Outcome{Skipped: true, SkipReason: d.Reason()}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return Outcome{Result: model.Failure(relPath, err)}
	}
	if d := fp.dirFilters.CheckSize(info); d.ShouldSkip() {
		return Outcome{Skipped: true, SkipReason: d.Reason()}
	}
	if d := fp.dirFilters.CheckExtension(trimmedExt(relPath)); d.ShouldSkip() {
		return Outcome{Skipped: true, SkipReason: d.Reason()}
	}

	f, err := os.Open(absPath)
	if err != nil {
		return Outcome{Result: model.Failure(relPath, err)}
	}
	defer f.Close()

	bufPtr := fp.bufs.get()
	defer fp.bufs.put(bufPtr)

	buf, err := readAll(*bufPtr, f, fp.maxFileSize)
	if err != nil {
		return Outcome{Result: model.Failure(relPath, err)}
	}
	*bufPtr = buf

	if d := fp.dirFilters.CheckContent(buf); d.ShouldSkip() {
		return Outcome{Skipped: true, SkipReason: d.Reason()}
	}

	matches := fp.contentFilters.Run(relPath, buf)
	model.SortMatches(matches)

	return Outcome{Result: model.FileResult{
		FilePath:       relPath,
		Matches:        matches,
		Success:        true,
		LinesProcessed: bytes.Count(buf, []byte{'\n'}) + 1,
		FileSize:       info.Size(),
		ScanTimeMS:     time.Since(start).Milliseconds(),
	}}
}

// readAll fills dst (reusing its backing array) from r, stopping early with
// an error if the content exceeds limit — a defensive backstop for files
// that grow between the Size Filter's stat and this read.
func readAll(dst []byte, r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	buf := bytes.NewBuffer(dst[:0])
	if _, err := buf.ReadFrom(lr); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if int64(len(out)) > limit {
		return nil, errFileGrewPastLimit
	}
	return out, nil
}

func trimmedExt(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return ext
}

