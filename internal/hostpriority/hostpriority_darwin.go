//go:build darwin

package hostpriority

import "golang.org/x/sys/unix"

// Elevate renices the current process. macOS has no per-thread niceness, so
// the whole process is raised.
func Elevate() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, elevatedNice)
}
