package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/cookiecutter/internal/export"
	"github.com/example/cookiecutter/internal/geom"
	"github.com/example/cookiecutter/internal/interact"
	"github.com/example/cookiecutter/internal/notify"
	"github.com/example/cookiecutter/internal/preview"
	"github.com/example/cookiecutter/internal/region"
	"github.com/example/cookiecutter/internal/render"
	"github.com/example/cookiecutter/internal/theme"
)

// messageDuration is how long a status message stays on screen.
const messageDuration = 2 * time.Second

// session owns the editing state of one image. It has no window and is
// driven entirely by the event loop, which keeps it testable headlessly.
type session struct {
	src    *image.NRGBA
	model  *region.Model
	editor *interact.Editor

	preview preview.Cache
	scaler  render.Scaler
	shadow  *render.Shadow

	exporter *export.Exporter
	notifier *notify.Notifier
	copyFn   func(image.Image) error
	log      *zap.Logger

	theme       *theme.Theme
	face        font.Face
	previewSize int

	size         image.Point
	message      string
	messageUntil time.Time
	now          func() time.Time
}

// view derives the transform from the current drawable size. It is never
// cached because the window may be resized between any two events.
func (s *session) view() geom.View {
	b := s.src.Bounds()
	return geom.NewView(s.size.X, s.size.Y, b.Dx(), b.Dy())
}

func (s *session) resize(w, h int) {
	s.size = image.Pt(w, h)
}

// handleMouse applies a pointer event and reports whether a repaint is due.
func (s *session) handleMouse(e mouse.Event) bool {
	return s.editor.HandleMouse(e, s.view()).Redraw
}

// handleKey applies a key event. It reports whether a repaint is due and
// whether the user asked to quit.
func (s *session) handleKey(e key.Event) (redraw, quit bool) {
	res := s.editor.HandleKey(e)
	switch res.Action {
	case interact.ActionQuit:
		return false, true
	case interact.ActionSave:
		s.save()
		return true, false
	case interact.ActionCopy:
		s.copy()
		return true, false
	}
	return res.Redraw, false
}

// save exports the current region. Failures are reported but leave the
// region and the preview untouched.
func (s *session) save() {
	r := s.model.Region()
	path, err := s.exporter.Save(s.src, r)
	switch {
	case err != nil:
		s.log.Error("save failed", zap.String("path", path), zap.Error(err))
		s.flash(fmt.Sprintf("save failed: %s", filepath.Base(path)))
	case path != "":
		s.log.Info("saved crop", zap.String("path", path),
			zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("w", r.W), zap.Int("h", r.H))
		s.flash("saved " + filepath.Base(path))
		s.notifier.Save(path)
	}
}

func (s *session) copy() {
	if s.copyFn == nil {
		return
	}
	r := s.model.Region()
	img := s.preview.Get(s.src, r)
	if img == nil {
		return
	}
	if err := s.copyFn(img); err != nil {
		s.log.Warn("copy to clipboard failed", zap.Error(err))
		s.flash("copy failed")
		return
	}
	detail := fmt.Sprintf("%dx%d crop", r.W, r.H)
	s.log.Info("copied crop", zap.Int("w", r.W), zap.Int("h", r.H))
	s.flash("copied " + detail)
	s.notifier.Copy(detail, img)
}

func (s *session) flash(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
}

// activeMessage returns the status message while it has not expired.
func (s *session) activeMessage() string {
	if s.message == "" || !s.now().Before(s.messageUntil) {
		return ""
	}
	return s.message
}

// highlight is 1 while the resize handle is grabbed or hovered.
func (s *session) highlight() float64 {
	if _, ok := s.editor.State().(interact.Resizing); ok || s.editor.Hovering() {
		return 1
	}
	return 0
}

// compose draws one frame into dst, regenerating the preview only when the
// region differs from the cached one.
func (s *session) compose(dst draw.Image) {
	v := s.view()
	r := s.model.Region()
	f := render.Frame{
		Theme:       s.theme,
		View:        v,
		Region:      r,
		Highlight:   s.highlight(),
		PreviewSize: s.previewSize,
		Shadow:      s.shadow,
		Face:        s.face,
		Text:        render.Readout(r),
		Message:     s.activeMessage(),
	}
	// Typed nils must not reach the interface fields.
	if img := s.scaler.Get(s.src, v.ImageRect().Size()); img != nil {
		f.Image = img
	}
	if pv := s.preview.Get(s.src, r); pv != nil {
		f.Preview = pv
	}
	f.Draw(dst)
}
