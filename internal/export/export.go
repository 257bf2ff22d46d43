// Package export writes crop regions to numbered PNG files.
package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/example/cookiecutter/internal/region"
)

// Exporter names output files from a counter it owns. The counter starts at
// 1 and advances on every attempted save, successful or not.
type Exporter struct {
	dir  string
	next int
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDir sets the output directory. The empty string means the working
// directory.
func WithDir(dir string) Option {
	return func(e *Exporter) { e.dir = dir }
}

// WithCounter seeds the number used by the next save.
func WithCounter(n int) Option {
	return func(e *Exporter) { e.next = n }
}

// New returns an Exporter writing to the working directory from crop_001.
func New(opts ...Option) *Exporter {
	e := &Exporter{next: 1}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Next returns the counter value the next save will use.
func (e *Exporter) Next() int { return e.next }

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// FileName formats the output name for save number n of a w×h crop.
func FileName(n, w, h int) string {
	return fmt.Sprintf("crop_%03d_%dx%d.png", n, w, h)
}

// Save encodes the pixels of src under r as PNG. It returns the written path,
// or an empty path and nil error when r is empty.
func (e *Exporter) Save(src image.Image, r region.Region) (string, error) {
	if r.Empty() {
		return "", nil
	}
	n := e.next
	e.next++
	path := filepath.Join(e.dir, FileName(n, r.W, r.H))
	img := imaging.Crop(src, r.Rect().Add(src.Bounds().Min))
	if err := writePNG(path, img); err != nil {
		return path, err
	}
	return path, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
		if err != nil {
			err = errors.Join(err, removeQuiet(path))
		}
	}()
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return fmt.Errorf("write PNG to %q: %w", path, err)
	}
	return nil
}

// removeQuiet deletes a partially written file. A file that is already gone
// is not an error.
func removeQuiet(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove partial %q: %w", path, err)
	}
	return nil
}
