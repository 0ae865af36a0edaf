package filters

import (
	"sort"
	"strings"

	"github.com/deepbrainspace/guardy/internal/entropy"
	"github.com/deepbrainspace/guardy/internal/model"
	"github.com/deepbrainspace/guardy/internal/prefilter"
)

// suppressionToken is the inline directive recognized by the
// comment-suppression filter. Recognition is case-sensitive.
const suppressionToken = "guardy:allow"

// commentOpeners are the tokens the suppression directive may legitimately
// follow, covering the common line- and block-comment syntaxes.
var commentOpeners = []string{"#", "//", "/*", "<!--", ";", "--"}

// ContentFilters runs the ordered Content Filters stage over one file's
// full byte buffer: prefilter gate, regex execution, comment-suppression,
// entropy validation, coordinate resolution, and confidence assignment.
type ContentFilters struct {
	prefilter             *prefilter.Prefilter
	enableEntropy         bool
	minEntropyThreshold   float64
	respectIgnoreComments bool
}

// NewContentFilters builds the Content Filters stage over a compiled
// detector set and effective configuration.
func NewContentFilters(detectors []*model.Detector, enableEntropy bool, minEntropyThreshold float64, respectIgnoreComments bool) *ContentFilters {
	return &ContentFilters{
		prefilter:             prefilter.Build(detectors),
		enableEntropy:         enableEntropy,
		minEntropyThreshold:   minEntropyThreshold,
		respectIgnoreComments: respectIgnoreComments,
	}
}

// candidateMatch is an internal record of one surviving regex hit, before
// coordinate resolution.
type candidateMatch struct {
	detector    *model.Detector
	start       int
	end         int
	matchedText []byte
}

// Run executes the full Content Filters stage over buf, returning every
// surviving SecretMatch for filePath. A nil/empty result means the file
// contributed nothing, not that an error occurred.
func (cf *ContentFilters) Run(filePath string, buf []byte) []model.SecretMatch {
	candidates := cf.prefilter.Candidates(buf)
	if len(candidates) == 0 {
		return nil
	}

	lineStarts := buildLineIndex(buf)

	var survivors []candidateMatch
	for _, d := range candidates {
		for _, loc := range findAllSecretSpans(d, buf) {
			start, end := loc[0], loc[1]
			text := buf[start:end]

			if cf.respectIgnoreComments && cf.isSuppressed(buf, lineStarts, start, d.ID) {
				continue
			}
			if d.NeedsEntropyValidation() && cf.enableEntropy {
				result := entropy.Analyze(string(text), cf.minEntropyThreshold)
				if !result.IsLikelySecret {
					continue
				}
			}
			survivors = append(survivors, candidateMatch{detector: d, start: start, end: end, matchedText: text})
		}
	}
	if len(survivors) == 0 {
		return nil
	}

	matches := make([]model.SecretMatch, 0, len(survivors))
	for _, s := range survivors {
		line, col := resolveCoordinate(lineStarts, s.start)
		matches = append(matches, model.SecretMatch{
			Location: model.FileSpan{
				FilePath: filePath,
				Coordinate: model.Coordinate{
					Line:       line,
					Column:     col,
					ByteOffset: uint64(s.start),
				},
			},
			MatchedText: string(s.matchedText),
			DetectorID:  s.detector.ID,
			DisplayName: s.detector.DisplayName,
			Description: s.detector.Description,
			Severity:    s.detector.Severity,
			Confidence:  confidenceFor(s.detector, s.matchedText, cf.minEntropyThreshold),
		})
	}
	return matches
}

// findAllSecretSpans runs a detector's regex over buf and returns the
// [start,end) byte span of each match's secret: the named "secret" group
// if declared, otherwise the full match span.
func findAllSecretSpans(d *model.Detector, buf []byte) [][2]int {
	idxMatches := d.Regex.FindAllSubmatchIndex(buf, -1)
	if idxMatches == nil {
		return nil
	}
	spans := make([][2]int, 0, len(idxMatches))
	for _, m := range idxMatches {
		if d.SecretGroup > 0 && 2*d.SecretGroup+1 < len(m) && m[2*d.SecretGroup] >= 0 {
			spans = append(spans, [2]int{m[2*d.SecretGroup], m[2*d.SecretGroup+1]})
			continue
		}
		spans = append(spans, [2]int{m[0], m[1]})
	}
	return spans
}

// buildLineIndex records the byte offset where each line begins, so every
// match's coordinate can be resolved in a single later pass rather than
// re-scanning from the start of the file per match.
func buildLineIndex(buf []byte) []int {
	starts := []int{0}
	for i, b := range buf {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// resolveCoordinate converts a byte offset into a 1-based (line, column)
// pair using the precomputed line-start index.
func resolveCoordinate(lineStarts []int, offset int) (line, col uint32) {
	i := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset })
	lineIdx := i - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	return uint32(lineIdx + 1), uint32(offset-lineStarts[lineIdx]) + 1
}

// isSuppressed implements the Comment-suppression Filter: a match is
// dropped if its own line, or the immediately preceding line, contains
// "guardy:allow" (optionally scoped to a detector id with ":id") after one
// of the recognized comment openers.
func (cf *ContentFilters) isSuppressed(buf []byte, lineStarts []int, offset int, detectorID string) bool {
	line, _ := resolveCoordinate(lineStarts, offset)
	lineIdx := int(line) - 1

	if lineContainsDirective(lineText(buf, lineStarts, lineIdx), detectorID) {
		return true
	}
	if lineIdx > 0 && lineContainsDirective(lineText(buf, lineStarts, lineIdx-1), detectorID) {
		return true
	}
	return false
}

func lineText(buf []byte, lineStarts []int, lineIdx int) string {
	if lineIdx < 0 || lineIdx >= len(lineStarts) {
		return ""
	}
	start := lineStarts[lineIdx]
	end := len(buf)
	if lineIdx+1 < len(lineStarts) {
		end = lineStarts[lineIdx+1]
	}
	return string(buf[start:end])
}

// lineContainsDirective reports whether line carries a guardy:allow
// directive applicable to detectorID: bare "guardy:allow" suppresses
// everything on the line; "guardy:allow:<id>" suppresses only that
// detector. The directive must follow whitespace or a recognized comment
// opener.
func lineContainsDirective(line, detectorID string) bool {
	idx := strings.Index(line, suppressionToken)
	for idx >= 0 {
		if precededByWhitespaceOrOpener(line, idx) && scopeMatches(line, idx, detectorID) {
			return true
		}
		next := strings.Index(line[idx+1:], suppressionToken)
		if next < 0 {
			break
		}
		idx = idx + 1 + next
	}
	return false
}

func precededByWhitespaceOrOpener(line string, idx int) bool {
	if idx == 0 {
		return true
	}
	before := line[:idx]
	trimmed := strings.TrimRight(before, " \t")
	if trimmed == "" {
		return true
	}
	for _, opener := range commentOpeners {
		if strings.HasSuffix(trimmed, opener) {
			return true
		}
	}
	return false
}

// scopeMatches checks the optional ":<detector_id>" suffix immediately
// after the directive token.
func scopeMatches(line string, idx int, detectorID string) bool {
	rest := line[idx+len(suppressionToken):]
	if !strings.HasPrefix(rest, ":") {
		return true
	}
	scoped := rest[1:]
	end := len(scoped)
	for i, r := range scoped {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			end = i
			break
		}
	}
	return scoped[:end] == detectorID
}

// confidenceFor scores a surviving match: 1.0 for VendorSpecific detectors,
// min(1.0, 1 - probability_natural) for Generic detectors that passed
// entropy validation.
func confidenceFor(d *model.Detector, matchedText []byte, threshold float64) float64 {
	if !d.NeedsEntropyValidation() {
		return 1.0
	}
	result := entropy.Analyze(string(matchedText), threshold)
	confidence := 1 - result.Probability
	if confidence > 1.0 {
		return 1.0
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}
