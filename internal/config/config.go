// Package config defines the shape of the configuration the scanning engine
// consumes. Loading it from disk, merging CLI flags, and hierarchical
// overrides are an external collaborator's job; this package only owns the
// struct and its frozen defaults so the engine can run standalone and in
// tests without that external loader.
package config

import "github.com/deepbrainspace/guardy/internal/patterns"

// Config holds the effective configuration for a Scanner.
type Config struct {
	MaxFileSizeMB         int
	FollowSymlinks        bool
	EnableEntropyAnalysis bool
	MinEntropyThreshold   float64
	IgnorePaths           []string
	BinaryExtensions      []string
	SkipBinaryFiles       bool
	RespectIgnoreComments bool
	// MaxThreads is the worker pool size; zero means "use the number of
	// hardware threads".
	MaxThreads int
	// MinFilesForParallel guards against pool setup overhead dominating
	// tiny scans: below this count, the Directory Pipeline runs inline.
	MinFilesForParallel int
	Detectors           []patterns.Definition
}

// DefaultIgnorePaths are the default ignore directories: build output, VCS
// internals, and dependency caches that are never worth scanning.
var DefaultIgnorePaths = []string{
	"**/.git/objects/**",
	"**/.git/refs/**",
	"**/.git/logs/**",
	"**/target/**",
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/.nuxt/**",
	"**/__pycache__/**",
	"**/.pytest_cache/**",
	"**/venv/**",
	"**/.venv/**",
	"**/vendor/**",
	"**/.cache/**",
	"**/.tmp/**",
	"**/.svn/**",
	"**/.hg/**",
	"**/.vscode/**",
	"**/.idea/**",
	"**/coverage/**",
}

// DefaultBinaryExtensions are treated as binary without a content sniff.
var DefaultBinaryExtensions = []string{
	"exe", "dll", "so", "dylib", "bin",
	"jpg", "jpeg", "png", "gif", "bmp", "ico", "svg", "webp",
	"zip", "tar", "gz", "bz2", "7z", "rar",
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
	"mp3", "mp4", "avi", "mov", "wav", "flac",
	"ttf", "otf", "woff", "woff2",
}

// Default returns the frozen default configuration, wired to the built-in
// pattern definitions.
func Default() *Config {
	return &Config{
		MaxFileSizeMB:         50,
		FollowSymlinks:        false,
		EnableEntropyAnalysis: true,
		MinEntropyThreshold:   1e-5,
		IgnorePaths:           append([]string(nil), DefaultIgnorePaths...),
		BinaryExtensions:      append([]string(nil), DefaultBinaryExtensions...),
		SkipBinaryFiles:       true,
		RespectIgnoreComments: true,
		MaxThreads:            0,
		MinFilesForParallel:   5,
		Detectors:             patterns.BuiltinDefinitions(),
	}
}
