//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"image"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return initErr
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
