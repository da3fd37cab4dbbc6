//go:build windows

package hostpriority

import "golang.org/x/sys/windows"

// Elevate moves the current process into the high priority class.
func Elevate() error {
	h, err := windows.GetCurrentProcess()
	if err != nil {
		return err
	}
	return windows.SetPriorityClass(h, windows.HIGH_PRIORITY_CLASS)
}
