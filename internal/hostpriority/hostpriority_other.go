//go:build !linux && !darwin && !windows

package hostpriority

// Elevate is a no-op on hosts without a supported priority call.
func Elevate() error {
	return nil
}
