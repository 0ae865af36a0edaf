//go:build !unix

package pipeline

import "os"

// fileKey falls back to the resolved path on platforms without a portable
// device/inode pair (e.g. Windows), where symlink cycles are instead bounded
// by the traversal's maxSymlinkDepth.
func fileKey(path string, _ os.FileInfo) string {
	return path
}
