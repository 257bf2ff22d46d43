package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/example/cookiecutter/internal/geom"
	"github.com/example/cookiecutter/internal/region"
	"github.com/example/cookiecutter/internal/theme"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestFrameDimsOutsideSelection(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	f := &Frame{
		Theme:  theme.Default(),
		View:   geom.NewView(100, 100, 100, 100),
		Image:  solid(100, 100, white),
		Region: region.Region{X: 20, Y: 20, W: 40, H: 40},
	}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	f.Draw(dst)

	// 140/255 black over white.
	if got := dst.RGBAAt(5, 5); !near(got.R, 115) || got.R != got.G {
		t.Fatalf("dimmed pixel: got %v", got)
	}
	if got := dst.RGBAAt(90, 40); !near(got.R, 115) {
		t.Fatalf("dimmed right band: got %v", got)
	}
	if got := dst.RGBAAt(40, 40); got != white {
		t.Fatalf("inside pixel: got %v", got)
	}
	if got := dst.RGBAAt(40, 20); got.G <= got.R || got.G <= got.B {
		t.Fatalf("border pixel should be green, got %v", got)
	}
}

func TestFrameHighlightsBottomRightHandle(t *testing.T) {
	paint := func(highlight float64) *image.RGBA {
		f := &Frame{
			View:      geom.NewView(100, 100, 100, 100),
			Region:    region.Region{X: 20, Y: 20, W: 40, H: 40},
			Highlight: highlight,
		}
		dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
		f.Draw(dst)
		return dst
	}
	plain, lit := paint(0), paint(1)
	if plain.RGBAAt(61, 61) == lit.RGBAAt(61, 61) {
		t.Fatal("bottom-right handle should change with highlight")
	}
	if plain.RGBAAt(19, 19) != lit.RGBAAt(19, 19) {
		t.Fatal("top-left handle should not change")
	}
}

func TestFrameLetterboxBackground(t *testing.T) {
	th := theme.Default()
	f := &Frame{
		Theme: th,
		View:  geom.NewView(200, 100, 100, 100),
		Image: solid(100, 100, color.RGBA{255, 0, 0, 255}),
	}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	f.Draw(dst)
	if got := dst.RGBAAt(10, 50); got != th.Background {
		t.Fatalf("letterbox: got %v, want %v", got, th.Background)
	}
	if got := dst.RGBAAt(100, 50); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("image: got %v", got)
	}
}

func TestFramePreviewPanel(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	f := &Frame{
		View:        geom.NewView(400, 400, 400, 400),
		Preview:     solid(8, 8, blue),
		PreviewSize: 64,
		Shadow:      NewShadow(DefaultShadowOptions()),
	}
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	f.Draw(dst)
	pr := PreviewRect(dst.Bounds(), 64)
	if pr != image.Rect(316, 316, 380, 380) {
		t.Fatalf("preview rect: got %v", pr)
	}
	if got := dst.RGBAAt(340, 340); got != blue {
		t.Fatalf("preview pixel: got %v", got)
	}
}

func TestPreviewRect(t *testing.T) {
	if got := PreviewRect(image.Rect(0, 0, 1280, 900), 256); got != image.Rect(1004, 624, 1260, 880) {
		t.Fatalf("got %v", got)
	}
	if got := PreviewRect(image.Rect(0, 0, 1280, 900), 0); !got.Empty() {
		t.Fatalf("zero size: got %v", got)
	}
}

func TestFrameText(t *testing.T) {
	th := theme.Default()
	f := &Frame{Theme: th, Face: basicfont.Face7x13, Text: Readout(region.Region{X: 1, Y: 2, W: 3, H: 3})}
	dst := image.NewRGBA(image.Rect(0, 0, 600, 60))
	f.Draw(dst)
	lit := 0
	for y := 16; y < 30; y++ {
		for x := 16; x < 200; x++ {
			if dst.RGBAAt(x, y) != th.Background {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected text pixels")
	}

	f.Face = nil
	dst = image.NewRGBA(image.Rect(0, 0, 600, 60))
	f.Draw(dst)
	if dst.RGBAAt(20, 25) != th.Background {
		t.Fatal("no face should draw no text")
	}
}

func TestReadout(t *testing.T) {
	want := "X: 272   Y: 172    W: 256   H: 256    (S = save, +/- = resize, arrows = nudge)"
	if got := Readout(region.Region{X: 272, Y: 172, W: 256, H: 256}); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestStrokeRectLeavesInterior(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{255, 0, 0, 255}
	StrokeRect(dst, image.Rect(2, 2, 18, 18), 2, red)
	if dst.RGBAAt(2, 2) != red || dst.RGBAAt(17, 10) != red || dst.RGBAAt(3, 16) != red {
		t.Fatal("expected outline pixels")
	}
	if dst.RGBAAt(10, 10).A != 0 || dst.RGBAAt(4, 4).A != 0 {
		t.Fatal("interior should be untouched")
	}
}

func TestHandleRects(t *testing.T) {
	hr := HandleRects(image.Rect(10, 10, 50, 50), 14)
	if hr[TopLeft] != image.Rect(3, 3, 17, 17) {
		t.Errorf("top-left: got %v", hr[TopLeft])
	}
	if hr[BottomRight] != image.Rect(43, 43, 57, 57) {
		t.Errorf("bottom-right: got %v", hr[BottomRight])
	}
}

func TestShadowFallsOff(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	s := NewShadow(ShadowOptions{Radius: 4, Offset: image.Pt(5, 5)})
	r := image.Rect(20, 20, 60, 60)
	s.Draw(dst, r, color.RGBA{0, 0, 0, 200})
	if dst.RGBAAt(45, 45).A == 0 {
		t.Fatal("expected shadow under the offset body")
	}
	if a, b := dst.RGBAAt(64, 45).A, dst.RGBAAt(50, 45).A; a >= b {
		t.Fatalf("shadow should fade toward its edge: edge %d, body %d", a, b)
	}
	if dst.RGBAAt(5, 5).A != 0 || dst.RGBAAt(90, 90).A != 0 {
		t.Fatal("shadow leaked outside its padding")
	}
}

func TestShadowMaskIsSoft(t *testing.T) {
	s := NewShadow(ShadowOptions{Radius: 4})
	mask := s.buildMask(image.Pt(40, 40))
	if got := mask.AlphaAt(24, 24).A; got != 255 {
		t.Fatalf("center coverage: got %d", got)
	}
	edge := mask.AlphaAt(43, 24).A
	if edge == 0 || edge == 255 {
		t.Fatalf("edge coverage should be partial, got %d", edge)
	}
	if got := mask.AlphaAt(0, 0).A; got >= edge {
		t.Fatalf("corner coverage %d should be below edge %d", got, edge)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	s.Draw(dst, image.Rect(20, 20, 60, 60), color.RGBA{0, 0, 0, 255})
	if got, want := dst.RGBAAt(59, 40).A, edge; got != want {
		t.Fatalf("drawn edge alpha: got %d, want mask coverage %d", got, want)
	}
}

func TestBlurAlphaKeepsConstant(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 12, 9))
	for i := range src.Pix {
		src.Pix[i] = 77
	}
	out := blurAlpha(src, 3)
	for i, v := range out.Pix {
		if v != 77 {
			t.Fatalf("pixel %d: got %d", i, v)
		}
	}
}

func TestResolveFace(t *testing.T) {
	face, err := ResolveFace(FontBuiltin, 16)
	if err != nil || face == nil {
		t.Fatalf("builtin: %v", err)
	}
	if face, err := ResolveFace(FontBasic, 0); err != nil || face != basicfont.Face7x13 {
		t.Fatalf("basic: %v %v", face, err)
	}

	saved := SystemFontPaths
	t.Cleanup(func() { SystemFontPaths = saved })
	SystemFontPaths = nil

	missing := filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := ResolveFace(missing, 16); !errors.Is(err, ErrNoFont) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing font: %v", err)
	}
	junk := filepath.Join(t.TempDir(), "junk.ttf")
	if err := os.WriteFile(junk, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveFace(junk, 16); !errors.Is(err, ErrNoFont) {
		t.Fatalf("junk font: %v", err)
	}
	if _, err := ResolveFace(FontSystem, 16); !errors.Is(err, ErrNoFont) {
		t.Fatalf("system with no candidates: %v", err)
	}
}

func TestScalerCaches(t *testing.T) {
	src := solid(40, 20, color.RGBA{10, 20, 30, 255})
	var s Scaler
	a := s.Get(src, image.Pt(20, 10))
	if a == nil || a.Bounds().Size() != image.Pt(20, 10) {
		t.Fatalf("got %v", a)
	}
	if b := s.Get(src, image.Pt(20, 10)); b != a {
		t.Fatal("expected cached image")
	}
	if c := s.Get(src, image.Pt(30, 15)); c == a {
		t.Fatal("expected a rescale after a size change")
	}
	if got := a.RGBAAt(5, 5); !near(got.R, 10) || !near(got.G, 20) || !near(got.B, 30) {
		t.Fatalf("scaled pixel: got %v", got)
	}
}
