package model

import "regexp"

// Severity ranks how dangerous a leaked secret of this kind is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its lowercase name rather than its
// ordinal, so JSON output reads "critical" instead of "3".
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Class distinguishes detectors whose keyword prefix is strong enough
// evidence on its own (VendorSpecific) from those that need entropy
// validation of the captured value (Generic).
type Class int

const (
	ClassVendorSpecific Class = iota
	ClassGeneric
)

func (c Class) String() string {
	if c == ClassVendorSpecific {
		return "vendor_specific"
	}
	return "generic"
}

func (c Class) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Detector is an immutable, compiled secret-detection rule. Detectors are
// created once at scanner construction and shared by reference across every
// worker goroutine; two SecretMatch values with the same DetectorID point at
// the same *Detector.
type Detector struct {
	ID          string
	DisplayName string
	Description string
	Severity    Severity
	Class       Class
	Regex       *regexp.Regexp
	// SecretGroup is the index of the named capture group "secret" within
	// Regex, or -1 if the regex has no such group (in which case the full
	// match span is the secret).
	SecretGroup int
	// Keywords are short ASCII literals used to gate this detector behind
	// the prefilter automaton. An empty Keywords set means the detector
	// always runs, bypassing the prefilter gate.
	Keywords []string
	// RequiresEntropy forces entropy validation even for a VendorSpecific
	// detector (normally only Generic detectors are entropy-checked).
	RequiresEntropy bool
	// CaseInsensitive requests ASCII case-insensitive keyword matching in
	// the prefilter. Detectors are case-sensitive by default.
	CaseInsensitive bool
}

// NeedsEntropyValidation reports whether a candidate match from this
// detector must survive entropy analysis before being reported.
func (d *Detector) NeedsEntropyValidation() bool {
	return d.Class == ClassGeneric || d.RequiresEntropy
}
