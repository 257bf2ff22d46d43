// Package interact turns pointer and keyboard events into crop region
// mutations.
//
// The gesture state is a closed set of variants: Idle, Dragging and Resizing.
// A primary button press inside the region starts Dragging, or Resizing when
// the press lands within the handle threshold of the bottom-right corner.
// Releasing any button always returns to Idle and commits whatever the
// gesture produced.
package interact

import (
	"image"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/cookiecutter/internal/geom"
	"github.com/example/cookiecutter/internal/region"
)

// Gesture is the pointer state of an Editor.
type Gesture interface {
	gesture()
}

// Idle means no button is held over the region.
type Idle struct{}

// Dragging moves the region. Anchor is the pointer offset from the region's
// top-left corner when the gesture began, in image space.
type Dragging struct {
	Anchor geom.Point
}

// Resizing moves the bottom-right corner. Anchor is the corner minus the
// pointer position when the gesture began, in image space.
type Resizing struct {
	Anchor geom.Point
}

func (Idle) gesture()     {}
func (Dragging) gesture() {}
func (Resizing) gesture() {}

// Action is a request the editor cannot fulfil itself.
type Action int

const (
	ActionNone Action = iota
	ActionSave
	ActionCopy
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSave:
		return "save"
	case ActionCopy:
		return "copy"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Result reports what an event did. Changed is set whenever the region was
// mutated; Redraw is also set for purely visual updates such as hover.
type Result struct {
	Changed bool
	Redraw  bool
	Action  Action
}

func changed(ok bool) Result { return Result{Changed: ok, Redraw: ok} }

// Options configures an Editor.
type Options struct {
	// HandleThreshold is the per-axis distance, in image pixels, from the
	// bottom-right corner within which a press starts a resize.
	HandleThreshold float64
	// Modifiers enables the Shift (single pixel resize) and Ctrl (page jump)
	// arrow key variants. Without it modified arrows behave like plain ones.
	Modifiers bool
}

// DefaultOptions returns a 24 pixel handle zone with modifiers enabled.
func DefaultOptions() Options {
	return Options{HandleThreshold: 24, Modifiers: true}
}

// Editor is the interaction state machine for one region model.
type Editor struct {
	model *region.Model
	opts  Options
	state Gesture
	hover bool
}

// NewEditor creates an Idle editor driving m.
func NewEditor(m *region.Model, opts Options) *Editor {
	return &Editor{model: m, opts: opts, state: Idle{}}
}

// State returns the current gesture.
func (e *Editor) State() Gesture { return e.state }

// Region returns the model's current region.
func (e *Editor) Region() region.Region { return e.model.Region() }

// Hovering reports whether an idle pointer rests over the resize handle.
func (e *Editor) Hovering() bool { return e.hover }

// Active reports whether a gesture is in progress.
func (e *Editor) Active() bool {
	_, idle := e.state.(Idle)
	return !idle
}

// HandleMouse dispatches a backend mouse event. Coordinates are display
// space and are mapped through v.
func (e *Editor) HandleMouse(ev mouse.Event, v geom.View) Result {
	p := image.Pt(int(ev.X), int(ev.Y))
	switch ev.Direction {
	case mouse.DirPress:
		if ev.Button != mouse.ButtonLeft {
			return Result{}
		}
		return e.Press(p, v)
	case mouse.DirRelease:
		return e.Release()
	case mouse.DirNone:
		return e.Motion(p, v)
	}
	return Result{}
}

// Press hit-tests p against the region and starts a gesture when it lands
// inside. Presses outside the region are ignored.
func (e *Editor) Press(p image.Point, v geom.View) Result {
	pt := v.ToImage(p)
	r := e.model.Region()
	if !contains(r, pt) {
		return Result{}
	}
	if e.inHandle(r, pt) {
		e.state = Resizing{Anchor: geom.FromImagePoint(r.BottomRight()).Sub(pt)}
	} else {
		e.state = Dragging{Anchor: pt.Sub(geom.Pt(float64(r.X), float64(r.Y)))}
	}
	e.hover = false
	return Result{Redraw: true}
}

// Release ends any gesture.
func (e *Editor) Release() Result {
	if !e.Active() {
		return Result{}
	}
	e.state = Idle{}
	return Result{Redraw: true}
}

// Motion applies the active gesture at pointer position p. While Idle it
// only tracks whether the pointer hovers the resize handle.
func (e *Editor) Motion(p image.Point, v geom.View) Result {
	pt := v.ToImage(p)
	switch g := e.state.(type) {
	case Dragging:
		return changed(e.model.MoveTo(pt.Sub(g.Anchor).Round()))
	case Resizing:
		return changed(e.model.ResizeCornerTo(pt.Add(g.Anchor).Round()))
	}
	r := e.model.Region()
	hover := contains(r, pt) && e.inHandle(r, pt)
	if hover == e.hover {
		return Result{}
	}
	e.hover = hover
	return Result{Redraw: true}
}

// HandleKey applies a key press. Releases and repeats reported with
// key.DirNone are ignored.
func (e *Editor) HandleKey(ev key.Event) Result {
	if ev.Direction != key.DirPress {
		return Result{}
	}
	shift := e.opts.Modifiers && ev.Modifiers&key.ModShift != 0
	ctrl := e.opts.Modifiers && ev.Modifiers&key.ModControl != 0

	switch ev.Code {
	case key.CodeLeftArrow:
		return e.arrow(-1, 0, shift, ctrl)
	case key.CodeRightArrow:
		return e.arrow(1, 0, shift, ctrl)
	case key.CodeUpArrow:
		return e.arrow(0, -1, shift, ctrl)
	case key.CodeDownArrow:
		return e.arrow(0, 1, shift, ctrl)
	case key.CodeKeypadPlusSign, key.CodeEqualSign:
		return changed(e.model.Grow())
	case key.CodeKeypadHyphenMinus, key.CodeHyphenMinus:
		return changed(e.model.Shrink())
	case key.CodeEscape, key.CodeQ:
		return Result{Action: ActionQuit}
	case key.CodeS:
		return Result{Action: ActionSave}
	case key.CodeC:
		if ev.Modifiers&key.ModControl != 0 {
			return Result{Action: ActionCopy}
		}
		return Result{}
	}

	switch unicode.ToLower(ev.Rune) {
	case '+', '=':
		return changed(e.model.Grow())
	case '-':
		return changed(e.model.Shrink())
	case 's':
		return Result{Action: ActionSave}
	case 'q':
		return Result{Action: ActionQuit}
	case 'c':
		if ev.Modifiers&key.ModControl != 0 {
			return Result{Action: ActionCopy}
		}
	}
	return Result{}
}

// arrow moves by one pixel, or with Shift resizes by one pixel anchored at
// the top-left (left/up shrink, right/down grow), or with Ctrl jumps by the
// region's own size when the destination fits.
func (e *Editor) arrow(dx, dy int, shift, ctrl bool) Result {
	switch {
	case ctrl:
		return changed(e.model.Jump(dx, dy))
	case shift:
		return changed(e.model.Nudge(dx + dy))
	default:
		return changed(e.model.MoveBy(dx, dy))
	}
}

func (e *Editor) inHandle(r region.Region, pt geom.Point) bool {
	br := geom.FromImagePoint(r.BottomRight())
	d := br.Sub(pt)
	return abs(d.X) < e.opts.HandleThreshold && abs(d.Y) < e.opts.HandleThreshold
}

// contains is inclusive on every edge so the corner itself can be grabbed.
func contains(r region.Region, pt geom.Point) bool {
	return pt.X >= float64(r.X) && pt.X <= float64(r.X+r.W) &&
		pt.Y >= float64(r.Y) && pt.Y <= float64(r.Y+r.H)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
