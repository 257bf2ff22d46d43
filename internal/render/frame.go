package render

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/example/cookiecutter/internal/geom"
	"github.com/example/cookiecutter/internal/region"
	"github.com/example/cookiecutter/internal/theme"
)

const (
	// PreviewMargin separates the preview panel from the window edges.
	PreviewMargin = 20
	textInset     = 16
	borderWidth   = 2
	messagePad    = 8
)

// Frame holds everything needed to draw one frame. It reads only derived
// data and never touches the editor state.
type Frame struct {
	Theme *theme.Theme
	View  geom.View
	// Image is the source already scaled to View.ImageRect().Size().
	Image  image.Image
	Region region.Region
	// Highlight blends the bottom-right handle from the theme's Handle color
	// (0) to HandleHover (1).
	Highlight   float64
	Preview     image.Image
	PreviewSize int
	Shadow      *Shadow
	Face        font.Face
	Text        string
	Message     string
}

// Draw renders f onto dst, whose bounds are the drawable area.
func (f *Frame) Draw(dst draw.Image) {
	th := f.Theme
	if th == nil {
		th = theme.Default()
	}
	area := dst.Bounds()
	draw.Draw(dst, area, image.NewUniform(straight(th.Background)), image.Point{}, draw.Src)

	if f.Image != nil {
		ir := f.View.ImageRect().Add(area.Min)
		draw.Draw(dst, ir, f.Image, f.Image.Bounds().Min, draw.Src)
	}

	if !f.Region.Empty() {
		sel := f.View.DisplayRect(f.Region.Rect()).Add(area.Min)
		DimOutside(dst, area, sel, th.Dim)
		StrokeRect(dst, sel, borderWidth, th.Border)
		for c, hr := range HandleRects(sel, HandleSize) {
			col := th.Handle
			if Corner(c) == BottomRight && f.Highlight > 0 {
				col = theme.Blend(th.Handle, th.HandleHover, min(f.Highlight, 1))
			}
			FillRect(dst, hr, col)
		}
	}

	if pr := PreviewRect(area, f.PreviewSize); f.Preview != nil && !pr.Empty() {
		f.Shadow.Draw(dst, pr, th.Shadow)
		xdraw.NearestNeighbor.Scale(dst, pr, f.Preview, f.Preview.Bounds(), draw.Src, nil)
		StrokeRect(dst, pr, 1, th.PreviewBorder)
	}

	DrawText(dst, f.Face, area.Min.Add(image.Pt(textInset, textInset)), f.Text, th.Text)

	if f.Message != "" && f.Face != nil {
		f.drawMessage(dst, th)
	}
}

// drawMessage centers the status message near the bottom edge.
func (f *Frame) drawMessage(dst draw.Image, th *theme.Theme) {
	area := dst.Bounds()
	size := TextSize(f.Face, f.Message)
	box := image.Rect(0, 0, size.X+2*messagePad, size.Y+2*messagePad)
	box = box.Add(image.Pt(
		area.Min.X+(area.Dx()-box.Dx())/2,
		area.Max.Y-PreviewMargin-box.Dy(),
	))
	FillRect(dst, box, th.MessageBackground)
	StrokeRect(dst, box, 1, th.PreviewBorder)
	DrawText(dst, f.Face, box.Min.Add(image.Pt(messagePad, messagePad)), f.Message, th.MessageText)
}

// PreviewRect places a size×size panel in the bottom-right corner of area.
// It is empty when size is not positive.
func PreviewRect(area image.Rectangle, size int) image.Rectangle {
	if size <= 0 {
		return image.Rectangle{}
	}
	br := area.Max.Sub(image.Pt(PreviewMargin, PreviewMargin))
	return image.Rectangle{Min: br.Sub(image.Pt(size, size)), Max: br}
}

// Readout formats the coordinate line drawn in the top-left corner.
func Readout(r region.Region) string {
	return fmt.Sprintf("X: %d   Y: %d    W: %d   H: %d    (S = save, +/- = resize, arrows = nudge)", r.X, r.Y, r.W, r.H)
}

// Scaler keeps the source image scaled to the current letterbox size.
type Scaler struct {
	src  image.Image
	size image.Point
	out  *image.RGBA
}

// Get returns src resized to size, rescaling only when src or size changed.
func (s *Scaler) Get(src image.Image, size image.Point) *image.RGBA {
	if src == nil || size.X <= 0 || size.Y <= 0 {
		return nil
	}
	if s.out != nil && s.src == src && s.size == size {
		return s.out
	}
	out := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	s.src, s.size, s.out = src, size, out
	return out
}
