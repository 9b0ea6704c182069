package appstate

import (
	"fmt"
	"image"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/maskbrush/internal/refine"
)

// refiner maps window events onto a refinement editor. The surface keeps
// its size and is scaled to the window.
type refiner struct {
	a             *AppState
	ed            *refine.Editor
	width, height int
	st            status
}

func (a *AppState) refineLoop(w screen.Window, f *frames, width, height int) {
	r := &refiner{a: a, ed: a.Editor}
	r.resize(width, height)
	keys := RefineKeymap()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			r.resize(e.WidthPx, e.HeightPx)
			repaint(w)
		case paint.Event:
			f.submit(r.state())
		case mouse.Event:
			if r.pointer(e) {
				repaint(w)
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			action, ok := keys.Lookup(e)
			if !ok {
				continue
			}
			if r.action(action) {
				return
			}
			repaint(w)
		}
	}
}

func (r *refiner) resize(width, height int) {
	r.width, r.height = width, height
	d := r.display()
	r.ed.SetViewport(float64(d.Min.X), float64(d.Min.Y), float64(d.Dx()), float64(d.Dy()))
}

func (r *refiner) display() image.Rectangle { return displayRect(r.width, r.height, r.ed.Size()) }

func (r *refiner) pointer(ev mouse.Event) bool {
	x, y := float64(ev.X), float64(ev.Y)
	inside := image.Pt(int(x), int(y)).In(r.display())
	switch ev.Direction {
	case mouse.DirPress:
		if !inside || ev.Button != mouse.ButtonLeft {
			return false
		}
		r.ed.PointerDown(x, y, r.a.RefineTool, r.a.BrushSize)
		return true
	case mouse.DirRelease:
		if !r.ed.Drawing() {
			return false
		}
		r.ed.PointerUp()
		return false
	case mouse.DirNone:
		if !r.ed.Drawing() {
			return false
		}
		if !inside {
			r.ed.PointerLeave()
			return false
		}
		r.ed.PointerMove(x, y)
		return true
	}
	return false
}

// action runs a key binding and reports whether the window should close.
// Apply and cancel both end the refinement.
func (r *refiner) action(name string) bool {
	switch name {
	case ActionErase:
		r.a.RefineTool = refine.Erase
	case ActionRestore:
		r.a.RefineTool = refine.Restore
	case ActionShrink, ActionGrow:
		r.a.BrushSize = stepBrush(r.a.BrushSize, name == ActionGrow)
	case ActionApply:
		return r.apply()
	case ActionCancel:
		r.ed.Cancel()
		r.st.show("refinement cancelled")
		return true
	}
	return false
}

func (r *refiner) apply() bool {
	data, err := r.ed.Apply()
	if err != nil {
		r.st.show("apply: %v", err)
		return false
	}
	if r.a.Output == "" {
		return true
	}
	if err := r.a.writeFile(r.a.Output, data); err != nil {
		r.st.show("apply: %v", err)
		return false
	}
	r.st.show("saved %s", r.a.Output)
	r.a.Notifier.Refine(r.a.Output, r.ed.Image())
	return true
}

func (r *refiner) state() paintState {
	return paintState{
		width:        r.width,
		height:       r.height,
		theme:        r.a.Theme,
		view:         cloneRGBA(r.ed.Image()),
		dst:          r.display(),
		checker:      true,
		status:       fmt.Sprintf("%s %gpx  E erase  R restore  [ ] size  Enter apply  Esc cancel", r.a.RefineTool, r.a.BrushSize),
		message:      r.st.message,
		messageUntil: r.st.until,
	}
}
