package model

import (
	"fmt"
	"sort"
)

// FileResult is the outcome of running the full filter pipeline over one
// file.
type FileResult struct {
	FilePath       string        `json:"file_path"`
	Matches        []SecretMatch `json:"matches"`
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	LinesProcessed int           `json:"lines_processed"`
	FileSize       int64         `json:"file_size"`
	ScanTimeMS     int64         `json:"scan_time_ms"`
}

// Failure builds a FileResult for a file the pipeline could not process.
func Failure(path string, err error) FileResult {
	return FileResult{FilePath: path, Success: false, Error: err.Error()}
}

// HasMatches reports whether any secrets were found in this file.
func (fr FileResult) HasMatches() bool { return len(fr.Matches) > 0 }

// ScanStats accumulates counters over a single scan run.
type ScanStats struct {
	FilesScanned    int64          `json:"files_scanned"`
	FilesSkipped    int64          `json:"files_skipped"`
	FilesFailed     int64          `json:"files_failed"`
	BytesProcessed  int64          `json:"bytes_processed"`
	LinesProcessed  int64          `json:"lines_processed"`
	TotalMatches    int64          `json:"total_matches"`
	MatchesBySeverity map[string]int64 `json:"matches_by_severity"`
	DurationMS      int64          `json:"duration_ms"`
}

// NewScanStats returns a zeroed ScanStats ready for accumulation.
func NewScanStats() *ScanStats {
	return &ScanStats{MatchesBySeverity: make(map[string]int64)}
}

// ThroughputMBPerSec returns the scan's effective I/O throughput in
// megabytes per second, or 0 if duration/bytes are not yet known.
func (s *ScanStats) ThroughputMBPerSec() float64 {
	if s.DurationMS <= 0 {
		return 0
	}
	mb := float64(s.BytesProcessed) / (1024 * 1024)
	return mb / (float64(s.DurationMS) / 1000)
}

// ScanResult is the complete output of a scan.
type ScanResult struct {
	Matches     []SecretMatch `json:"matches"`
	Stats       *ScanStats    `json:"stats"`
	FileResults []FileResult  `json:"file_results"`
	Warnings    []string      `json:"warnings"`
}

// HasSecrets reports whether the scan found anything.
func (r *ScanResult) HasSecrets() bool { return len(r.Matches) > 0 }

// FilesWithSecrets returns the sorted, de-duplicated list of file paths that
// contain at least one match.
func (r *ScanResult) FilesWithSecrets() []string {
	seen := make(map[string]struct{})
	for _, m := range r.Matches {
		seen[m.Location.FilePath] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for path := range seen {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Summary renders a short human-readable line describing the run.
func (r *ScanResult) Summary() string {
	return fmt.Sprintf(
		"scanned %d files in %.2fs, found %d secrets in %d files (%.1f MB/s)",
		r.Stats.FilesScanned,
		float64(r.Stats.DurationMS)/1000.0,
		len(r.Matches),
		len(r.FilesWithSecrets()),
		r.Stats.ThroughputMBPerSec(),
	)
}

// SortMatches orders matches by (file_path, line, column, detector_id) so
// that two scans of the same tree produce byte-identical output.
func SortMatches(matches []SecretMatch) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Location.FilePath != b.Location.FilePath {
			return a.Location.FilePath < b.Location.FilePath
		}
		if a.Location.Coordinate.Line != b.Location.Coordinate.Line {
			return a.Location.Coordinate.Line < b.Location.Coordinate.Line
		}
		if a.Location.Coordinate.Column != b.Location.Coordinate.Column {
			return a.Location.Coordinate.Column < b.Location.Coordinate.Column
		}
		return a.DetectorID < b.DetectorID
	})
}
