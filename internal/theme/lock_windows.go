//go:build windows

package theme

// acquireLock is a no-op on Windows: the desktop stack this tool manages is
// Unix-only and concurrent applies are not expected there.
func acquireLock(path string) (func(), error) {
	return func() {}, nil
}
