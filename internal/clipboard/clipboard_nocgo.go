//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import "image"

// WriteImage reports why the clipboard is unavailable in a cgo-free build.
func WriteImage(img image.Image) error {
	if _, err := encodePNG(img); err != nil {
		return err
	}
	if !hasDisplay() {
		return errNoDisplay
	}
	return errCGODisabled
}
