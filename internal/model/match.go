package model

// Coordinate is a 1-based line/column position paired with a 0-based byte
// offset into the file.
type Coordinate struct {
	Line       uint32 `json:"line"`
	Column     uint32 `json:"column"`
	ByteOffset uint64 `json:"byte_offset"`
}

// FileSpan locates a position within a specific file.
type FileSpan struct {
	FilePath   string     `json:"file_path"`
	Coordinate Coordinate `json:"coordinate"`
}

// SecretMatch is a single secret found in a file.
type SecretMatch struct {
	Location    FileSpan `json:"location"`
	MatchedText string   `json:"matched_text"`
	DetectorID  string   `json:"detector_id"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
}

// Redacted returns a display-safe version of MatchedText: the first and last
// three characters with the middle replaced by a fixed mask, or a
// fully-masked string for short secrets.
func (m SecretMatch) Redacted() string {
	n := len(m.MatchedText)
	if n <= 8 {
		return "********"[:n]
	}
	return m.MatchedText[:3] + "..." + m.MatchedText[n-3:]
}
