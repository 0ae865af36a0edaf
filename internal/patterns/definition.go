// Package patterns implements the Pattern Library: the immutable,
// process-wide registry of compiled secret detectors.
//
// Every detector is expressed as a single data-driven table entry — a
// regex literal plus a keyword set — rather than one Go package per
// vendor. There is no per-vendor verification step: nothing here ever
// makes a network call to confirm a credential is live, so only the
// regex and keyword shape of each vendor's format needs to survive.
package patterns

import "github.com/deepbrainspace/guardy/internal/model"

// Definition is the unvalidated, config-facing description of a detector.
type Definition struct {
	ID              string
	DisplayName     string
	Description     string
	Severity        model.Severity
	Class           model.Class
	Regex           string
	Keywords        []string
	RequiresEntropy bool
	// CaseInsensitive requests ASCII case-insensitive keyword matching.
	// Detectors are case-sensitive by default.
	CaseInsensitive bool
}
