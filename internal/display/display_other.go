//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

// Monitors is not implemented on this platform.
func Monitors() ([]Monitor, error) {
	return nil, ErrUnavailable
}
