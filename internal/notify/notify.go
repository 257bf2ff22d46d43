// Package notify sends optional desktop notifications after a crop is saved
// or copied.
package notify

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/example/cookiecutter/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when a crop is written to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when a crop is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification text.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Cookie Cutter",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies environment overrides to the defaults.
func LoadPreferences(lookup func(string) (string, bool)) Preferences {
	prefs := DefaultPreferences()
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	if v := get("COOKIECUTTER_NOTIFY_TITLE"); v != "" {
		prefs.Title = v
	}
	if v := get("COOKIECUTTER_NOTIFY_SAVE_TEXT"); v != "" {
		prefs.Templates[EventSave] = v
	}
	if v := get("COOKIECUTTER_NOTIFY_COPY_TEXT"); v != "" {
		prefs.Templates[EventCopy] = v
	}
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger for delivery failures.
func WithLogger(l *zap.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// WithSender replaces platform.Notify.
func WithSender(s Sender) Option {
	return func(n *Notifier) { n.send = s }
}

// Notifier sends OS-level notifications for enabled events. A nil Notifier
// is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
	log     *zap.Logger
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences, opts ...Option) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	n := &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify, log: zap.NewNop()}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save announces a written file, using it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy. When img is non-nil it is written to a
// temporary file for the notification icon.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "crop"
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			n.log.Warn("notification preview", zap.Error(err))
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.log.Warn("notification failed", zap.String("event", string(event)), zap.Error(err))
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "cookiecutter-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
