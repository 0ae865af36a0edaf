package patterns

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/deepbrainspace/guardy/internal/model"
)

// ConfigError is returned by Build when a Definition cannot be compiled into
// a Detector: an invalid regex, or a declared keyword containing
// non-ASCII/control bytes.
type ConfigError struct {
	DetectorID string
	Err        error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pattern library: detector %q: %v", e.DetectorID, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Library is the immutable, process-wide registry of compiled detectors. It
// is built once at scanner construction and shared by reference for the
// scanner's lifetime.
type Library struct {
	detectors []*model.Detector
	byID      map[string]*model.Detector
}

// Build compiles every Definition into a Detector. Keyword extraction
// happens here: a Definition with explicit Keywords uses them verbatim;
// otherwise keywords are inferred from the regex's unambiguous literal
// prefix (the run of literal characters before the first metacharacter,
// minimum length 3). An empty keyword set is valid and means "always run
// this detector" (it bypasses the prefilter gate).
func Build(defs []Definition) (*Library, error) {
	lib := &Library{byID: make(map[string]*model.Detector, len(defs))}

	for _, def := range defs {
		re, err := regexp.Compile(def.Regex)
		if err != nil {
			return nil, &ConfigError{DetectorID: def.ID, Err: fmt.Errorf("invalid regex: %w", err)}
		}

		keywords := def.Keywords
		if keywords == nil {
			keywords = inferKeywords(def.Regex)
		}
		for _, kw := range keywords {
			if !isCleanASCII(kw) {
				return nil, &ConfigError{DetectorID: def.ID, Err: fmt.Errorf("keyword %q contains non-ASCII or control bytes", kw)}
			}
		}

		d := &model.Detector{
			ID:              def.ID,
			DisplayName:     def.DisplayName,
			Description:     def.Description,
			Severity:        def.Severity,
			Class:           def.Class,
			Regex:           re,
			SecretGroup:     re.SubexpIndex("secret"),
			Keywords:        keywords,
			RequiresEntropy: def.RequiresEntropy,
			CaseInsensitive: def.CaseInsensitive,
		}
		if _, exists := lib.byID[d.ID]; exists {
			return nil, &ConfigError{DetectorID: def.ID, Err: fmt.Errorf("duplicate detector id")}
		}
		lib.detectors = append(lib.detectors, d)
		lib.byID[d.ID] = d
	}

	return lib, nil
}

// Detectors returns every compiled detector, by shared reference.
func (l *Library) Detectors() []*model.Detector { return l.detectors }

// ByID looks up a detector by its stable identifier.
func (l *Library) ByID(id string) (*model.Detector, bool) {
	d, ok := l.byID[id]
	return d, ok
}

// inferKeywords extracts the unambiguous literal prefix of a regex pattern
// (the run of characters up to the first metacharacter), keeping it only if
// it is at least 3 characters. Returns nil if no such prefix exists, meaning
// the detector always runs.
func inferKeywords(pattern string) []string {
	const metachars = `\.+*?()|[]{}^$`
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if containsByte(metachars, c) {
			break
		}
		i++
	}
	if i < 3 {
		return nil
	}
	return []string{pattern[:i]}
}

func containsByte(s string, b byte) bool {
	for j := 0; j < len(s); j++ {
		if s[j] == b {
			return true
		}
	}
	return false
}

func isCleanASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
