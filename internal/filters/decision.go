// Package filters implements the Directory Filters and Content Filters: the
// metadata-only pre-read checks and the byte-buffer matching stage that
// together decide whether, and how, a file contributes matches to a scan.
package filters

// Decision is the sum type every filter in the chain returns: either
// Process (continue to the next filter / stage) or Skip (stop, with a
// short machine-readable reason). Modeled as a struct with a bool
// discriminant rather than an interface hierarchy, so the filter chain
// composes as a short ordered list rather than a deep type hierarchy.
type Decision struct {
	skip   bool
	reason string
}

// Process is the zero-value Decision: continue the chain.
var Process = Decision{}

// Skip builds a Decision that stops the chain with reason.
func Skip(reason string) Decision {
	return Decision{skip: true, reason: reason}
}

// ShouldSkip reports whether this Decision stops the chain.
func (d Decision) ShouldSkip() bool { return d.skip }

// Reason returns the skip reason, or "" for Process.
func (d Decision) Reason() string { return d.reason }
