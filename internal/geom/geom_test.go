package geom

import (
	"image"
	"math/rand"
	"testing"
)

func TestNewViewLetterbox(t *testing.T) {
	tests := []struct {
		name         string
		drawW, drawH int
		imgW, imgH   int
		scale        float64
		offset       image.Point
	}{
		{"wide window", 1280, 900, 800, 600, 1.5, image.Pt(40, 0)},
		{"tall window", 400, 900, 800, 600, 0.5, image.Pt(0, 300)},
		{"exact fit", 800, 600, 800, 600, 1, image.Pt(0, 0)},
		{"unrealized drawable", 0, 0, 800, 600, 1.0 / 800, image.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(tt.drawW, tt.drawH, tt.imgW, tt.imgH)
			if v.Scale != tt.scale {
				t.Errorf("scale: got %v, want %v", v.Scale, tt.scale)
			}
			if v.Offset != tt.offset {
				t.Errorf("offset: got %v, want %v", v.Offset, tt.offset)
			}
		})
	}
}

func TestZeroSizedInputsDoNotPanic(t *testing.T) {
	v := NewView(0, -5, 0, 0)
	if v.Drawable != image.Pt(1, 1) || v.Image != image.Pt(1, 1) {
		t.Fatalf("expected 1x1 minimum, got drawable %v image %v", v.Drawable, v.Image)
	}
	p := v.ToImage(image.Pt(3, 4))
	if got := v.ToDisplay(p); got != image.Pt(3, 4) {
		t.Fatalf("round trip: got %v", got)
	}
	var zero View
	if got := zero.ToDisplay(zero.ToImage(image.Pt(7, 9))); got != image.Pt(7, 9) {
		t.Fatalf("zero view round trip: got %v", got)
	}
}

func TestRoundTripWithinDrawable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := [][4]int{
		{1280, 900, 800, 600},
		{1280, 900, 4000, 3000},
		{640, 480, 333, 777},
		{1917, 1043, 31, 29},
	}
	for _, s := range sizes {
		v := NewView(s[0], s[1], s[2], s[3])
		for i := 0; i < 500; i++ {
			p := image.Pt(rng.Intn(s[0]), rng.Intn(s[1]))
			got := v.ToDisplay(v.ToImage(p))
			if abs(got.X-p.X) > 1 || abs(got.Y-p.Y) > 1 {
				t.Fatalf("view %v: round trip of %v gave %v", s, p, got)
			}
		}
	}
}

func TestToImageInvertsOffsetThenScale(t *testing.T) {
	v := NewView(1280, 900, 800, 600)
	got := v.ToImage(image.Pt(40+300, 150))
	if got != Pt(200, 100) {
		t.Fatalf("got %v, want (200,100)", got)
	}
}

func TestDisplayRect(t *testing.T) {
	v := NewView(1280, 900, 800, 600)
	got := v.DisplayRect(image.Rect(272, 172, 528, 428))
	want := image.Rect(448, 258, 832, 642)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if v.ImageRect() != image.Rect(40, 0, 1240, 900) {
		t.Fatalf("unexpected image rect %v", v.ImageRect())
	}
}

func TestPointRound(t *testing.T) {
	if got := Pt(1.5, -0.5).Round(); got != image.Pt(2, 0) {
		t.Fatalf("got %v", got)
	}
	if got := Pt(2.49, 3.51).Round(); got != image.Pt(2, 4) {
		t.Fatalf("got %v", got)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
