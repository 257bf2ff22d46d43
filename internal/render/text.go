package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font names with special meaning in ResolveFace.
const (
	FontBuiltin = "builtin" // embedded Go Regular
	FontBasic   = "basic"   // fixed 7x13 bitmap face
	FontSystem  = "system"  // first of SystemFontPaths that loads
)

// SystemFontPaths are tried when a configured font cannot be loaded.
var SystemFontPaths = []string{
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// ErrNoFont is returned when no candidate font could be loaded.
var ErrNoFont = errors.New("no usable font")

// ResolveFace loads the face named by the font setting. A path that fails to
// load falls back through SystemFontPaths. The returned error joins every
// failed attempt when nothing could be loaded.
func ResolveFace(name string, size float64) (font.Face, error) {
	switch name {
	case "", FontBuiltin:
		return ParseFace(goregular.TTF, size)
	case FontBasic:
		return basicfont.Face7x13, nil
	}

	var errs []error
	candidates := SystemFontPaths
	if name != FontSystem {
		candidates = append([]string{name}, SystemFontPaths...)
	}
	for _, path := range candidates {
		face, err := LoadFace(path, size)
		if err == nil {
			return face, nil
		}
		if path == name || !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, ErrNoFont
	}
	return nil, fmt.Errorf("%w: %w", ErrNoFont, errors.Join(errs...))
}

// LoadFace reads a TrueType or OpenType file.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	face, err := ParseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return face, nil
}

// ParseFace builds a face of the given point size at 72 DPI.
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// DrawText draws s with its top-left corner at pt and returns the bounds it
// covers. A nil face draws nothing.
func DrawText(dst draw.Image, face font.Face, pt image.Point, s string, c color.RGBA) image.Rectangle {
	if face == nil || s == "" {
		return image.Rectangle{Min: pt, Max: pt}
	}
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(straight(c)),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+m.Ascent.Ceil()),
	}
	w := d.MeasureString(s).Ceil()
	d.DrawString(s)
	return image.Rect(pt.X, pt.Y, pt.X+w, pt.Y+m.Height.Ceil())
}

// TextSize measures s in face.
func TextSize(face font.Face, s string) image.Point {
	if face == nil {
		return image.Point{}
	}
	return image.Pt(font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil())
}
