// Package render composes the editor frame: the letterboxed image, the
// dimmed surround, the selection outline with its corner handles, the
// preview panel and the text overlay.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// HandleSize is the side of the square drawn on each selection corner.
const HandleSize = 14

// straight converts a theme color, which is stored unpremultiplied, into a
// color the draw package blends correctly.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FillRect blends c over r.
func FillRect(dst draw.Image, r image.Rectangle, c color.RGBA) {
	if r.Empty() || c.A == 0 {
		return
	}
	draw.Draw(dst, r, image.NewUniform(straight(c)), image.Point{}, draw.Over)
}

// StrokeRect outlines r with lines thick pixels wide, drawn inside r.
func StrokeRect(dst draw.Image, r image.Rectangle, thick int, c color.RGBA) {
	if thick < 1 || r.Empty() {
		return
	}
	if 2*thick >= r.Dx() || 2*thick >= r.Dy() {
		FillRect(dst, r, c)
		return
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), c)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick), c)
	FillRect(dst, image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick), c)
}

// DimOutside veils every pixel of area that is not inside hole. The four
// bands never overlap so the veil has a uniform strength.
func DimOutside(dst draw.Image, area, hole image.Rectangle, c color.RGBA) {
	hole = hole.Intersect(area)
	if hole.Empty() {
		FillRect(dst, area, c)
		return
	}
	FillRect(dst, image.Rect(area.Min.X, area.Min.Y, area.Max.X, hole.Min.Y), c)
	FillRect(dst, image.Rect(area.Min.X, hole.Max.Y, area.Max.X, area.Max.Y), c)
	FillRect(dst, image.Rect(area.Min.X, hole.Min.Y, hole.Min.X, hole.Max.Y), c)
	FillRect(dst, image.Rect(hole.Max.X, hole.Min.Y, area.Max.X, hole.Max.Y), c)
}

// Corner names a selection corner.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// HandleRects returns the corner squares of r, each centered on its corner,
// indexed by Corner.
func HandleRects(r image.Rectangle, size int) [4]image.Rectangle {
	h := size / 2
	at := func(p image.Point) image.Rectangle {
		return image.Rect(p.X-h, p.Y-h, p.X-h+size, p.Y-h+size)
	}
	return [4]image.Rectangle{
		TopLeft:     at(r.Min),
		TopRight:    at(image.Pt(r.Max.X, r.Min.Y)),
		BottomLeft:  at(image.Pt(r.Min.X, r.Max.Y)),
		BottomRight: at(r.Max),
	}
}
