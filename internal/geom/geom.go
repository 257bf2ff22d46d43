// Package geom converts coordinates between image space (pixels of the loaded
// source image) and display space (pixels of the window's drawable area).
package geom

import (
	"image"
	"math"
)

// Point is a fractional coordinate. Image-space pointer positions are kept
// fractional until a region mutation rounds them.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Round returns the nearest integer point, halves rounding up.
func (p Point) Round() image.Point {
	return image.Pt(int(math.Floor(p.X+0.5)), int(math.Floor(p.Y+0.5)))
}

// FromImagePoint converts an integer point.
func FromImagePoint(p image.Point) Point { return Point{float64(p.X), float64(p.Y)} }

// View is the uniform, aspect preserving scale and letterbox offset used to
// place an image inside a drawable area. It is cheap to build and is never
// cached across frames because the window may be resized at any time.
type View struct {
	Scale    float64
	Offset   image.Point
	Drawable image.Point
	Image    image.Point
}

// NewView computes the view for an image of imgW x imgH drawn into a drawable
// of drawW x drawH. Sizes below one pixel, such as a drawable queried before
// the window is realized, are treated as 1x1.
func NewView(drawW, drawH, imgW, imgH int) View {
	drawW, drawH = atLeastOne(drawW), atLeastOne(drawH)
	imgW, imgH = atLeastOne(imgW), atLeastOne(imgH)
	zx := float64(drawW) / float64(imgW)
	zy := float64(drawH) / float64(imgH)
	scale := zx
	if zy < zx {
		scale = zy
	}
	scaledW := int(float64(imgW) * scale)
	scaledH := int(float64(imgH) * scale)
	return View{
		Scale:    scale,
		Offset:   image.Pt((drawW-scaledW)/2, (drawH-scaledH)/2),
		Drawable: image.Pt(drawW, drawH),
		Image:    image.Pt(imgW, imgH),
	}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// ToImage maps a display-space point into image space: the letterbox offset
// is removed first, then the scale is divided out.
func (v View) ToImage(p image.Point) Point {
	s := v.scale()
	return Point{
		X: float64(p.X-v.Offset.X) / s,
		Y: float64(p.Y-v.Offset.Y) / s,
	}
}

// ToDisplay maps an image-space point into display space. It is the inverse
// of ToImage up to rounding to whole display pixels.
func (v View) ToDisplay(p Point) image.Point {
	s := v.scale()
	return image.Pt(
		int(math.Floor(p.X*s+0.5))+v.Offset.X,
		int(math.Floor(p.Y*s+0.5))+v.Offset.Y,
	)
}

// ImageRect is the display rectangle the whole source image is drawn into.
func (v View) ImageRect() image.Rectangle {
	s := v.scale()
	w := int(float64(v.Image.X) * s)
	h := int(float64(v.Image.Y) * s)
	return image.Rect(v.Offset.X, v.Offset.Y, v.Offset.X+w, v.Offset.Y+h)
}

// DisplayRect maps an image-space rectangle into display space. Origin and
// size are truncated separately so a region keeps a stable on-screen size
// while it is dragged.
func (v View) DisplayRect(r image.Rectangle) image.Rectangle {
	s := v.scale()
	x := int(float64(r.Min.X)*s) + v.Offset.X
	y := int(float64(r.Min.Y)*s) + v.Offset.Y
	return image.Rect(x, y, x+int(float64(r.Dx())*s), y+int(float64(r.Dy())*s))
}

func (v View) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
