package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/deepbrainspace/guardy/internal/config"
	"github.com/deepbrainspace/guardy/internal/model"
	"github.com/deepbrainspace/guardy/internal/pathglob"
)

// visitedSymlinkCacheSize bounds the symlink-cycle-detection cache so a
// pathological tree of symlinks can't grow it without bound.
const visitedSymlinkCacheSize = 10_000

// ignoreFilenames are the ignore-file names the traversal discovers and
// folds into the effective path-ignore set.
var ignoreFilenames = map[string]bool{".gitignore": true, ".ignore": true}

// Abort is a shared cancellation flag: workers check it between files,
// never mid-file. Safe for concurrent use.
type Abort struct {
	flag atomic.Bool
}

// Signal requests that an in-progress Scan/ScanFiles stop picking up new
// work.
func (a *Abort) Signal() { a.flag.Store(true) }

// Signaled reports whether Signal has been called.
func (a *Abort) Signaled() bool { return a.flag.Load() }

// DirectoryPipeline implements scan(root) -> ScanResult: traversal,
// ignore-file discovery, worker-pool dispatch over the File Pipeline, and
// the deterministic final sort.
type DirectoryPipeline struct {
	file                *FilePipeline
	configIgnore        *pathglob.Matcher
	maxThreads          int
	minFilesForParallel int
	followSymlinks      bool
}

// NewDirectoryPipeline builds a Directory Pipeline over an already-
// constructed File Pipeline and effective configuration.
func NewDirectoryPipeline(file *FilePipeline, cfg *config.Config) (*DirectoryPipeline, error) {
	threads := cfg.MaxThreads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	configIgnore, err := pathglob.Compile(cfg.IgnorePaths)
	if err != nil {
		return nil, err
	}
	return &DirectoryPipeline{
		file:                file,
		configIgnore:        configIgnore,
		maxThreads:          threads,
		minFilesForParallel: cfg.MinFilesForParallel,
		followSymlinks:      cfg.FollowSymlinks,
	}, nil
}

// Scan walks root, enumerating candidate files and dispatching each to the
// File Pipeline, and returns the aggregated, deterministically sorted
// ScanResult. logger receives one structured line per enumeration or
// per-file problem, in addition to the same text folded into
// ScanResult.Warnings / FileResult.Error for callers that only inspect the
// result value.
func (dp *DirectoryPipeline) Scan(root string, abort *Abort, logger logr.Logger) (*model.ScanResult, error) {
	start := time.Now()

	paths, warnings, err := dp.enumerate(root, logger)
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", root, err)
	}

	result := dp.dispatch(root, paths, abort, logger)
	result.Warnings = append(result.Warnings, warnings...)
	result.Stats.DurationMS = time.Since(start).Milliseconds()
	return result, nil
}

// ScanFiles bypasses traversal and ignore-file discovery (the staged-commit
// scan mode) but still runs every path through the Directory and Content
// Filters via the File Pipeline. Entries in paths may be absolute or
// relative to root; see resolvePath.
func (dp *DirectoryPipeline) ScanFiles(root string, paths []string, abort *Abort, logger logr.Logger) *model.ScanResult {
	start := time.Now()
	result := dp.dispatch(root, paths, abort, logger)
	result.Stats.DurationMS = time.Since(start).Milliseconds()
	return result
}

// enumerate walks root, honoring discovered ignore files and the
// follow-symlinks flag (with device/inode cycle detection), and returns the
// relative paths of every candidate file.
func (dp *DirectoryPipeline) enumerate(root string, logger logr.Logger) ([]string, []string, error) {
	ignoreMatcher, err := discoverIgnoreFiles(root)
	if err != nil {
		return nil, nil, err
	}

	var (
		paths    []string
		warnings []string
		visited  *lru.Cache[string, struct{}]
	)
	if dp.followSymlinks {
		visited, _ = lru.New[string, struct{}](visitedSymlinkCacheSize)
	}

	var walkDir func(absDir, relDir string)
	walkDir = func(absDir, relDir string) {
		entries, rerr := os.ReadDir(absDir)
		if rerr != nil {
			logger.Error(rerr, "failed to read directory", "path", relDir)
			warnings = append(warnings, fmt.Sprintf("%s: %v", relDir, rerr))
			return
		}

		for _, entry := range entries {
			name := entry.Name()
			absPath := filepath.Join(absDir, name)
			relPath := name
			if relDir != "" {
				relPath = relDir + "/" + name
			}

			info, ierr := entry.Info()
			if ierr != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", relPath, ierr))
				continue
			}

			target := info
			if info.Mode()&os.ModeSymlink != 0 {
				if !dp.followSymlinks {
					continue
				}
				resolved, serr := os.Stat(absPath)
				if serr != nil {
					warnings = append(warnings, fmt.Sprintf("%s: %v", relPath, serr))
					continue
				}
				key := fileKey(absPath, resolved)
				if visited != nil {
					if _, seen := visited.Get(key); seen {
						continue
					}
					visited.Add(key, struct{}{})
				}
				target = resolved
			}

			if target.IsDir() {
				if ignoreMatcher.Match(relPath) || dp.configIgnore.Match(relPath) {
					continue
				}
				walkDir(absPath, relPath)
				continue
			}

			if ignoreMatcher.Match(relPath) {
				continue
			}
			paths = append(paths, relPath)
		}
	}

	walkDir(root, "")
	return paths, warnings, nil
}

// resolvePath reconciles one entry from an explicit file list against root:
// enumerate always produces paths already relative to root, but an external
// StagedFileLister is free to return absolute paths. An absolute entry is
// used as-is for I/O, with its output-facing path rebased onto root via
// filepath.Rel; a relative entry is joined onto root for I/O and used
// unchanged as the output-facing path. If an absolute entry falls outside
// root (or Rel otherwise fails), the absolute path itself is kept as the
// output-facing path rather than discarding the entry.
func resolvePath(root, p string) (absPath, outPath string) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(root, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			return p, p
		}
		return p, filepath.ToSlash(rel)
	}
	return filepath.Join(root, filepath.FromSlash(p)), p
}

// dispatch submits every path to the File Pipeline, running inline below
// MinFilesForParallel (pool setup overhead dominates on tiny scans) and
// over a bounded conc/pool worker pool otherwise. Each path is resolved via
// resolvePath, so callers may mix root-relative and absolute entries freely.
func (dp *DirectoryPipeline) dispatch(root string, paths []string, abort *Abort, logger logr.Logger) *model.ScanResult {
	stats := model.NewScanStats()
	result := &model.ScanResult{Stats: stats}
	if len(paths) == 0 {
		return result
	}

	var mu sync.Mutex
	run := func(p string) {
		if abort != nil && abort.Signaled() {
			return
		}
		absPath, outPath := resolvePath(root, p)
		outcome := dp.file.Process(absPath, outPath)

		mu.Lock()
		defer mu.Unlock()

		if outcome.Skipped {
			stats.FilesSkipped++
			return
		}
		result.FileResults = append(result.FileResults, outcome.Result)
		if !outcome.Result.Success {
			stats.FilesFailed++
			logger.Error(fmt.Errorf("%s", outcome.Result.Error), "failed to scan file", "path", outPath)
			return
		}
		stats.FilesScanned++
		stats.BytesProcessed += outcome.Result.FileSize
		stats.LinesProcessed += int64(outcome.Result.LinesProcessed)
		for _, m := range outcome.Result.Matches {
			stats.TotalMatches++
			stats.MatchesBySeverity[m.Severity.String()]++
			result.Matches = append(result.Matches, m)
		}
	}

	if len(paths) < dp.minFilesForParallel {
		for _, p := range paths {
			run(p)
		}
	} else {
		p := pool.New().WithMaxGoroutines(dp.maxThreads)
		for _, entry := range paths {
			entry := entry
			p.Go(func() { run(entry) })
		}
		p.Wait()
	}

	if abort != nil && abort.Signaled() {
		logger.Info("scan aborted before completion")
		result.Warnings = append(result.Warnings, "scan aborted before completion")
	}

	model.SortMatches(result.Matches)
	return result
}

// discoverIgnoreFiles walks root looking for .gitignore/.ignore files and
// compiles their rules into a single ordered pathglob.Matcher, rebased onto
// paths relative to root. This is a pragmatic subset of gitignore semantics
// built on the same glob engine as the configured path-ignore set (no
// gitignore-parsing library exists in this module's dependency set), not a
// full reimplementation of git's ignore-matching precedence rules.
func discoverIgnoreFiles(root string) (*pathglob.Matcher, error) {
	var patterns []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !ignoreFilenames[d.Name()] {
			return nil
		}
		relDir, rerr := filepath.Rel(root, filepath.Dir(path))
		if rerr != nil {
			return nil
		}
		relDir = filepath.ToSlash(relDir)
		if relDir == "." {
			relDir = ""
		}

		lines, rerr := readLines(path)
		if rerr != nil {
			return nil
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, rebaseIgnorePattern(relDir, line)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pathglob.Compile(patterns)
}

// rebaseIgnorePattern translates one gitignore-style line found in
// relDir/.gitignore into one or more root-relative glob patterns: the
// literal path under relDir, and (for patterns not anchored with a leading
// "/") an additional "**/"-prefixed form so the rule also matches at any
// depth beneath relDir, matching gitignore's own unanchored-pattern
// semantics. A trailing "/**" variant covers directory contents.
func rebaseIgnorePattern(relDir, line string) []string {
	negate := strings.HasPrefix(line, "!")
	line = strings.TrimPrefix(line, "!")
	anchored := strings.HasPrefix(line, "/")
	line = strings.TrimPrefix(line, "/")
	line = strings.TrimSuffix(line, "/")

	join := func(parts ...string) string {
		nonEmpty := parts[:0]
		for _, p := range parts {
			if p != "" {
				nonEmpty = append(nonEmpty, p)
			}
		}
		return strings.Join(nonEmpty, "/")
	}

	base := join(relDir, line)
	variants := []string{base, base + "/**"}
	if !anchored {
		unanchored := join(relDir, "**", line)
		variants = append(variants, unanchored, unanchored+"/**")
	}

	if negate {
		for i, v := range variants {
			variants[i] = "!" + v
		}
	}
	return variants
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
