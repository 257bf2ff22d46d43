package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow behind the preview panel.
type ShadowOptions struct {
	Radius int
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow cast down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 10,
		Offset: image.Pt(6, 6),
	}
}

// Shadow draws a blurred rectangular drop shadow. The blurred mask depends
// only on the rectangle size, so it is kept until the size changes.
type Shadow struct {
	opts ShadowOptions
	size image.Point
	mask *image.Alpha
}

// NewShadow returns a Shadow using opts.
func NewShadow(opts ShadowOptions) *Shadow {
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	return &Shadow{opts: opts}
}

// Draw paints the shadow that r casts onto dst in color c.
func (s *Shadow) Draw(dst draw.Image, r image.Rectangle, c color.RGBA) {
	if s == nil || r.Empty() || c.A == 0 {
		return
	}
	if s.mask == nil || s.size != r.Size() {
		s.mask = s.buildMask(r.Size())
		s.size = r.Size()
	}
	pad := s.opts.Radius
	at := r.Inset(-pad).Add(s.opts.Offset)
	draw.DrawMask(dst, at, image.NewUniform(straight(c)), image.Point{}, s.mask, image.Point{}, draw.Over)
}

// buildMask returns the coverage mask. DrawMask reads coverage from the
// alpha channel, so the blur runs on an Alpha image.
func (s *Shadow) buildMask(size image.Point) *image.Alpha {
	pad := s.opts.Radius
	mask := image.NewAlpha(image.Rect(0, 0, size.X+2*pad, size.Y+2*pad))
	body := image.Rect(pad, pad, pad+size.X, pad+size.Y)
	draw.Draw(mask, body, image.NewUniform(color.Alpha{A: 255}), image.Point{}, draw.Src)
	return blurAlpha(mask, pad)
}

// blurAlpha applies a separable box blur of the given radius using running
// sums along each axis.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := image.NewAlpha(b)

	sums := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((sums[x1+1] - sums[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			out.Pix[y*out.Stride+x] = uint8((sums[y1+1] - sums[y0]) / (y1 - y0 + 1))
		}
	}
	return out
}
