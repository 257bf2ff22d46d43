// Package appstate runs the cookie cutter window: it owns the event loop,
// feeds pointer and keyboard input to the crop editor and paints each frame.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/cookiecutter/internal/export"
	"github.com/example/cookiecutter/internal/interact"
	"github.com/example/cookiecutter/internal/notify"
	"github.com/example/cookiecutter/internal/region"
	"github.com/example/cookiecutter/internal/render"
	"github.com/example/cookiecutter/internal/theme"
)

// ProgramTitle prefixes every window title.
const ProgramTitle = "Cookie Cutter"

// Controls lists the key and mouse bindings for the window title.
const Controls = "drag: move, drag corner: resize, arrows: nudge, Shift+arrows: 1px size, " +
	"Ctrl+arrows: jump, +/-: resize, S: save, Ctrl+C: copy, Q/Esc: quit"

// ErrNoImage is returned by Run when no image was supplied.
var ErrNoImage = errors.New("no image to edit")

// AppState holds the configuration of one editing window.
type AppState struct {
	Image       *image.NRGBA
	Title       string
	Width       int
	Height      int
	PreviewSize int
	Limits      region.Limits
	Interact    interact.Options
	Theme       *theme.Theme
	Face        font.Face
	Exporter    *export.Exporter
	Notifier    *notify.Notifier
	Logger      *zap.Logger
	// Copy publishes an image to the clipboard. Nil disables Ctrl+C.
	Copy func(image.Image) error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the image being cropped.
func WithImage(img *image.NRGBA) Option { return func(a *AppState) { a.Image = img } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithWindowSize sets the initial window size.
func WithWindowSize(w, h int) Option {
	return func(a *AppState) { a.Width, a.Height = w, h }
}

// WithPreviewSize sets the side of the preview panel. Zero hides it.
func WithPreviewSize(n int) Option { return func(a *AppState) { a.PreviewSize = n } }

// WithLimits sets the crop size policy.
func WithLimits(l region.Limits) Option { return func(a *AppState) { a.Limits = l } }

// WithInteract sets the pointer and modifier key options.
func WithInteract(o interact.Options) Option { return func(a *AppState) { a.Interact = o } }

// WithTheme sets the overlay colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithFace sets the overlay font. Nil disables text.
func WithFace(f font.Face) Option { return func(a *AppState) { a.Face = f } }

// WithExporter sets where saves go.
func WithExporter(e *export.Exporter) Option { return func(a *AppState) { a.Exporter = e } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(a *AppState) { a.Logger = l } }

// WithClipboard sets the function used for Ctrl+C.
func WithClipboard(fn func(image.Image) error) Option { return func(a *AppState) { a.Copy = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:       ProgramTitle,
		Width:       1280,
		Height:      900,
		PreviewSize: 256,
		Limits:      region.DefaultLimits(),
		Interact:    interact.DefaultOptions(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Exporter == nil {
		a.Exporter = export.New()
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	return a
}

func (a *AppState) newSession() *session {
	b := a.Image.Bounds()
	m := region.New(region.Dimensions{W: b.Dx(), H: b.Dy()}, a.Limits)
	return &session{
		src:         a.Image,
		model:       m,
		editor:      interact.NewEditor(m, a.Interact),
		shadow:      render.NewShadow(render.DefaultShadowOptions()),
		exporter:    a.Exporter,
		notifier:    a.Notifier,
		copyFn:      a.Copy,
		log:         a.Logger,
		theme:       a.Theme,
		face:        a.Face,
		previewSize: a.PreviewSize,
		size:        image.Pt(a.Width, a.Height),
		now:         time.Now,
	}
}

// Run opens the window and blocks until it is closed. Initialization
// failures are returned rather than terminating the process.
func (a *AppState) Run() error {
	if a.Image == nil || a.Image.Bounds().Empty() {
		return ErrNoImage
	}
	var runErr error
	driver.Main(func(s screen.Screen) { runErr = a.Main(s) })
	return runErr
}

// Main runs the event loop on s.
func (a *AppState) Main(s screen.Screen) error {
	sess := a.newSession()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.Width, Height: a.Height, Title: a.Title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	r := sess.model.Region()
	a.Logger.Debug("editor ready",
		zap.Int("image_w", sess.src.Bounds().Dx()), zap.Int("image_h", sess.src.Bounds().Dy()),
		zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("size", r.W))

	// Repaints are coalesced so every input queued before a paint is
	// applied before that frame is drawn.
	paintPending := false
	requestPaint := func() {
		if !paintPending {
			paintPending = true
			w.Send(paint.Event{})
		}
	}
	// Stopped before the deferred w.Release runs.
	expiry := newExpiryTimer(func() { w.Send(paint.Event{}) })
	defer expiry.Stop()

	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			sess.resize(e.WidthPx, e.HeightPx)
			requestPaint()
		case paint.Event:
			paintPending = false
			if sess.size.X <= 0 || sess.size.Y <= 0 {
				continue
			}
			if buf == nil || buf.Size() != sess.size {
				if buf != nil {
					buf.Release()
				}
				if buf, err = s.NewBuffer(sess.size); err != nil {
					return fmt.Errorf("new buffer: %w", err)
				}
			}
			sess.compose(buf.RGBA())
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case mouse.Event:
			if sess.handleMouse(e) {
				requestPaint()
			}
		case key.Event:
			until := sess.messageUntil
			redraw, quit := sess.handleKey(e)
			if quit {
				return nil
			}
			if redraw {
				requestPaint()
			}
			if sess.messageUntil != until {
				// Repaint once the new message has expired.
				expiry.Reset(messageDuration)
			}
		case error:
			a.Logger.Warn("window event error", zap.Error(e))
		}
	}
}
