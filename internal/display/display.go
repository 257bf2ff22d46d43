// Package display queries monitor geometry so the initial window fits the
// screen it opens on.
package display

import (
	"errors"
	"image"
)

// ErrUnavailable is returned when no monitor geometry can be queried.
var ErrUnavailable = errors.New("monitor geometry unavailable")

// Monitor describes one active output.
type Monitor struct {
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Primary returns the primary monitor, or the first one when none is marked.
func Primary(monitors []Monitor) (Monitor, bool) {
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	return monitors[0], true
}

// FitWindow shrinks want to at most frac of screen on each axis while
// keeping its aspect ratio. An empty screen leaves want unchanged.
func FitWindow(want, screen image.Point, frac float64) image.Point {
	if screen.X <= 0 || screen.Y <= 0 || frac <= 0 {
		return want
	}
	maxW := int(float64(screen.X) * frac)
	maxH := int(float64(screen.Y) * frac)
	if want.X <= maxW && want.Y <= maxH {
		return want
	}
	s := min(float64(maxW)/float64(want.X), float64(maxH)/float64(want.Y))
	return image.Pt(max(1, int(float64(want.X)*s)), max(1, int(float64(want.Y)*s)))
}

// PrimarySize returns the size of the primary monitor.
func PrimarySize() (image.Point, error) {
	monitors, err := Monitors()
	if err != nil {
		return image.Point{}, err
	}
	m, ok := Primary(monitors)
	if !ok {
		return image.Point{}, ErrUnavailable
	}
	return m.Rect.Size(), nil
}
