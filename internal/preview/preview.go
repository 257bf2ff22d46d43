// Package preview memoizes the pixels under the current crop region.
package preview

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/example/cookiecutter/internal/region"
)

// Cache holds at most one cropped image together with the region it was cut
// from. It is not safe for concurrent use.
type Cache struct {
	region region.Region
	img    *image.NRGBA
}

// Get returns the pixels of src under r. When r equals the region of the held
// entry the same image is returned without copying. Otherwise the entry is
// replaced by a fresh crop. An empty region clears the cache and yields nil.
func (c *Cache) Get(src image.Image, r region.Region) *image.NRGBA {
	if r.Empty() || src == nil {
		c.Reset()
		return nil
	}
	if c.img != nil && c.region == r {
		return c.img
	}
	b := src.Bounds()
	c.img = imaging.Crop(src, r.Rect().Add(b.Min))
	c.region = r
	return c.img
}

// Region returns the region of the held entry and whether one exists.
func (c *Cache) Region() (region.Region, bool) {
	return c.region, c.img != nil
}

// Reset drops the held entry.
func (c *Cache) Reset() {
	c.region = region.Region{}
	c.img = nil
}
