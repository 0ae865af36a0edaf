package filters

import (
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/deepbrainspace/guardy/internal/config"
	"github.com/deepbrainspace/guardy/internal/pathglob"
)

// sniffWindow is how many leading bytes are read to decide whether a file
// is binary.
const sniffWindow = 8 * 1024

// minPrintableRatio is the fraction of sniffed bytes that must fall in the
// printable-ASCII or common-whitespace ranges for a file to be treated as
// text.
const minPrintableRatio = 0.90

// DirectoryFilters runs the fixed Path -> Size -> Binary composition over
// file metadata, short-circuiting on the first Skip.
type DirectoryFilters struct {
	path             *pathglob.Matcher
	maxBytes         int64
	binaryExtensions map[string]struct{}
	skipBinaryFiles  bool
}

// NewDirectoryFilters builds the Directory Filters chain from effective
// configuration.
func NewDirectoryFilters(cfg *config.Config) (*DirectoryFilters, error) {
	m, err := pathglob.Compile(cfg.IgnorePaths)
	if err != nil {
		return nil, err
	}
	exts := make(map[string]struct{}, len(cfg.BinaryExtensions))
	for _, e := range cfg.BinaryExtensions {
		exts[e] = struct{}{}
	}
	return &DirectoryFilters{
		path:             m,
		maxBytes:         int64(cfg.MaxFileSizeMB) * 1024 * 1024,
		binaryExtensions: exts,
		skipBinaryFiles:  cfg.SkipBinaryFiles,
	}, nil
}

// CheckPath applies the Path Filter against relPath (relative to the scan
// root).
func (df *DirectoryFilters) CheckPath(relPath string) Decision {
	if df.path.Match(relPath) {
		return Skip("path ignored")
	}
	return Process
}

// CheckSize applies the Size Filter against file metadata.
func (df *DirectoryFilters) CheckSize(info os.FileInfo) Decision {
	size := info.Size()
	if size == 0 {
		return Skip("empty")
	}
	if size > df.maxBytes {
		return Skip("too large")
	}
	return Process
}

// CheckExtension applies the extension half of the Binary Filter: a
// short-circuit before any bytes are read.
func (df *DirectoryFilters) CheckExtension(ext string) Decision {
	if !df.skipBinaryFiles {
		return Process
	}
	if _, ok := df.binaryExtensions[ext]; ok {
		return Skip("binary extension")
	}
	return Process
}

// CheckContent applies the content-sniff half of the Binary Filter over
// the leading bytes of a file (at most sniffWindow of them). Consults
// mimetype's classifier first, then falls back to a NUL-byte /
// printable-ratio heuristic for anything it doesn't recognize as text.
func (df *DirectoryFilters) CheckContent(head []byte) Decision {
	if !df.skipBinaryFiles {
		return Process
	}
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}

	if mimetype.Detect(head).Is("text/plain") {
		return Process
	}

	if looksBinary(head) {
		return Skip("binary content")
	}
	return Process
}

// looksBinary flags a NUL byte anywhere in the sniffed window, or fewer
// than minPrintableRatio of bytes in the printable-ASCII/common-whitespace
// ranges.
func looksBinary(head []byte) bool {
	if len(head) == 0 {
		return false
	}
	printable := 0
	for _, b := range head {
		if b == 0 {
			return true
		}
		if isPrintableOrWhitespace(b) {
			printable++
		}
	}
	return float64(printable)/float64(len(head)) < minPrintableRatio
}

func isPrintableOrWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\r':
		return true
	}
	return b >= 0x20 && b < 0x7f
}
