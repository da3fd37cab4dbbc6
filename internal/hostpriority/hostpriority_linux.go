//go:build linux

package hostpriority

import "golang.org/x/sys/unix"

// Elevate renices the calling thread. The engine locks the goroutine to an
// OS thread before calling this, so only the measurement thread is affected.
func Elevate() error {
	return unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), elevatedNice)
}
