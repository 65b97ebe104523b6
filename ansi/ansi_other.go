//go:build !windows

package ansi

// EnableANSI is a no-op outside Windows; terminals there speak VT already.
func EnableANSI() error {
	return nil
}
