// Package region holds the square crop selection and the policies that keep
// it inside the source image.
package region

import (
	"errors"
	"fmt"
	"image"
)

// Dimensions is the immutable size of the loaded source image.
type Dimensions struct {
	W, H int
}

// Region is a selection rectangle in image space, top-left origin.
type Region struct {
	X, Y, W, H int
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

// BottomRight returns the exclusive bottom-right corner.
func (r Region) BottomRight() image.Point { return image.Pt(r.X+r.W, r.Y+r.H) }

// Empty reports whether r has a non-positive width or height.
func (r Region) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Limits configures the size policy of a Model.
type Limits struct {
	DefaultSize int
	MinSize     int
	MaxSize     int
	Step        int
}

// DefaultLimits returns the stock sizes: 256 default, 32 minimum, 2048
// maximum and 16 pixel grow/shrink steps.
func DefaultLimits() Limits {
	return Limits{DefaultSize: 256, MinSize: 32, MaxSize: 2048, Step: 16}
}

var errInvalidLimits = errors.New("invalid crop limits")

// Validate reports limits that could never produce a valid region.
func (l Limits) Validate() error {
	switch {
	case l.MinSize < 1:
		return fmt.Errorf("%w: min_size %d must be at least 1", errInvalidLimits, l.MinSize)
	case l.MaxSize < l.MinSize:
		return fmt.Errorf("%w: max_size %d is below min_size %d", errInvalidLimits, l.MaxSize, l.MinSize)
	case l.DefaultSize < l.MinSize:
		return fmt.Errorf("%w: default_size %d is below min_size %d", errInvalidLimits, l.DefaultSize, l.MinSize)
	case l.DefaultSize > l.MaxSize:
		return fmt.Errorf("%w: default_size %d is above max_size %d", errInvalidLimits, l.DefaultSize, l.MaxSize)
	case l.Step < 1:
		return fmt.Errorf("%w: step %d must be at least 1", errInvalidLimits, l.Step)
	}
	return nil
}

// Model owns the current selection. Every mutator clamps internally so the
// region is always square, at least the minimum size and fully inside the
// image. Mutators report whether the region changed.
type Model struct {
	dims   Dimensions
	limits Limits
	r      Region
}

// New creates a model with a default sized square centered in the image.
// The square shrinks to the image's shorter side when the image is smaller
// than the default.
func New(dims Dimensions, limits Limits) *Model {
	if dims.W < 1 {
		dims.W = 1
	}
	if dims.H < 1 {
		dims.H = 1
	}
	m := &Model{dims: dims, limits: limits}
	size := m.fitSize(limits.DefaultSize)
	m.r = Region{X: (dims.W - size) / 2, Y: (dims.H - size) / 2, W: size, H: size}
	return m
}

// Region returns the current selection.
func (m *Model) Region() Region { return m.r }

// Dimensions returns the source image size the model is bounded by.
func (m *Model) Dimensions() Dimensions { return m.dims }

// Limits returns the size policy.
func (m *Model) Limits() Limits { return m.limits }

// minSize is the configured floor, lowered to the image's shorter side for
// images smaller than the floor.
func (m *Model) minSize() int {
	return min(m.limits.MinSize, m.dims.W, m.dims.H)
}

// maxFit is the largest square that fits the image.
func (m *Model) maxFit() int {
	return min(m.dims.W, m.dims.H)
}

func (m *Model) fitSize(size int) int {
	return clamp(size, m.minSize(), m.maxFit())
}

func (m *Model) set(r Region) bool {
	if r == m.r {
		return false
	}
	m.r = r
	return true
}

// clampPosition slides a region of fixed size so both corners lie within the
// image.
func (m *Model) clampPosition(r Region) Region {
	r.X = clamp(r.X, 0, m.dims.W-r.W)
	r.Y = clamp(r.Y, 0, m.dims.H-r.H)
	return r
}

// MoveBy shifts the selection by (dx, dy), stopping at the image edges.
func (m *Model) MoveBy(dx, dy int) bool {
	r := m.r
	r.X += dx
	r.Y += dy
	return m.set(m.clampPosition(r))
}

// MoveTo places the top-left corner at p, clamped so the size is unchanged
// and the region stays inside the image.
func (m *Model) MoveTo(p image.Point) bool {
	r := m.r
	r.X, r.Y = p.X, p.Y
	return m.set(m.clampPosition(r))
}

// Jump moves the selection by whole multiples of its own size. The move is
// rejected unless the destination lies fully inside the image.
func (m *Model) Jump(cols, rows int) bool {
	r := m.r
	r.X += cols * r.W
	r.Y += rows * r.H
	if r.X < 0 || r.Y < 0 || r.X+r.W > m.dims.W || r.Y+r.H > m.dims.H {
		return false
	}
	return m.set(r)
}

// Grow enlarges the selection by one step around its center. Nothing happens
// once the maximum size is reached.
func (m *Model) Grow() bool {
	if m.r.W >= m.limits.MaxSize {
		return false
	}
	return m.resizeCentered(min(m.r.W+m.limits.Step, m.limits.MaxSize))
}

// Shrink reduces the selection by one step around its center, never below
// the minimum size.
func (m *Model) Shrink() bool {
	if m.r.W <= m.minSize() {
		return false
	}
	return m.resizeCentered(max(m.r.W-m.limits.Step, m.minSize()))
}

// resizeCentered keeps the current center, derives the new top-left from it
// and then clamps into the image.
func (m *Model) resizeCentered(size int) bool {
	size = m.fitSize(size)
	cx := m.r.X + m.r.W/2
	cy := m.r.Y + m.r.H/2
	r := Region{X: cx - size/2, Y: cy - size/2, W: size, H: size}
	return m.set(m.clampPosition(r))
}

// ResizeAnchored requests a new width and height with the top-left corner
// fixed. Each side is bounded by the minimum size and by the distance to the
// image edge, then the square is forced by taking the smaller side.
func (m *Model) ResizeAnchored(w, h int) bool {
	r := m.r
	w = clamp(w, m.minSize(), m.dims.W-r.X)
	h = clamp(h, m.minSize(), m.dims.H-r.Y)
	size := min(w, h)
	r.W, r.H = size, size
	return m.set(r)
}

// ResizeCornerTo moves the bottom-right corner to p with the top-left fixed.
func (m *Model) ResizeCornerTo(p image.Point) bool {
	return m.ResizeAnchored(p.X-m.r.X, p.Y-m.r.Y)
}

// Nudge changes the size by delta pixels with the top-left fixed. It does not
// recenter. Width and height both change by delta so a positive step grows the
// square instead of being undone by the min(w, h) square rule.
func (m *Model) Nudge(delta int) bool {
	size := m.r.W + delta
	return m.ResizeAnchored(size, size)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
