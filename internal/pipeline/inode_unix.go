//go:build unix

package pipeline

import (
	"fmt"
	"os"
	"syscall"
)

// fileKey returns a stable identity for info suitable for symlink-cycle
// detection: device and inode number on platforms that expose them through
// syscall.Stat_t, which is every unix os/arch pair Go supports.
func fileKey(path string, info os.FileInfo) string {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return fmt.Sprintf("%d:%d", st.Dev, st.Ino)
	}
	return path
}
