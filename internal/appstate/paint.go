package appstate

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/maskbrush/internal/clipboard"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

var (
	copyPNG  = clipboard.WritePNG
	readMask = clipboard.ReadMask
)

func writeFile(path string, data []byte) error { return os.WriteFile(path, data, 0o644) }

// maskDecoded carries a raster mask decoded off the event loop.
type maskDecoded struct {
	img image.Image
	err error
}

// decodeClipboardMask reads and decodes the clipboard mask. It runs on its
// own goroutine and must not touch the engine.
func decodeClipboardMask(read func() ([]byte, string, error)) maskDecoded {
	data, url, err := read()
	if err != nil {
		return maskDecoded{err: err}
	}
	if url != "" {
		img, err := raster.DecodeDataURL(url)
		return maskDecoded{img: img, err: err}
	}
	img, _, err := raster.Decode(data)
	return maskDecoded{img: img, err: err}
}

// painter maps window events onto a mask engine.
type painter struct {
	a             *AppState
	e             *mask.Engine
	send          func(any)
	width, height int
	st            status
}

func (a *AppState) paintLoop(w screen.Window, f *frames, width, height int) {
	p := &painter{a: a, e: a.Engine, send: w.Send}
	p.resize(width, height)
	keys := PaintKeymap()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			p.resize(e.WidthPx, e.HeightPx)
			repaint(w)
		case paint.Event:
			f.submit(p.state())
		case mouse.Event:
			if p.pointer(e) {
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
			if p.action(action) {
				return
			}
			repaint(w)
		case maskDecoded:
			p.addMask(e)
			repaint(w)
		}
	}
}

// resize lays the surface out in the canvas and records where it landed.
func (p *painter) resize(width, height int) {
	p.width, p.height = width, height
	c := canvasRect(width, height)
	p.e.Layout(float64(c.Dx()), float64(c.Dy()))
	p.place()
}

func (p *painter) place() {
	r := surfaceRect(p.width, p.height, p.e.Size())
	p.e.SetViewport(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}

func (p *painter) surface() image.Rectangle { return surfaceRect(p.width, p.height, p.e.Size()) }

// pointer forwards a mouse event and reports whether the view changed. The
// right button always erases. Leaving the surface mid-drag ends the stroke.
func (p *painter) pointer(ev mouse.Event) bool {
	x, y := float64(ev.X), float64(ev.Y)
	inside := image.Pt(int(x), int(y)).In(p.surface())
	switch ev.Direction {
	case mouse.DirPress:
		// A second button pressed mid-drag belongs to the stroke in progress.
		if !inside || p.e.Drawing() {
			return false
		}
		tool := p.a.Tool
		switch ev.Button {
		case mouse.ButtonLeft:
		case mouse.ButtonRight:
			tool = stroke.Erase
		default:
			return false
		}
		p.e.PointerDown(x, y, tool, p.a.BrushSize)
		return p.e.Drawing()
	case mouse.DirRelease:
		if !p.e.Drawing() {
			return false
		}
		p.e.PointerUp()
		p.place()
		return true
	case mouse.DirNone:
		if !p.e.Drawing() {
			return false
		}
		if !inside {
			p.e.PointerLeave()
			p.place()
			return true
		}
		p.e.PointerMove(x, y)
		return true
	}
	return false
}

// action runs a key binding and reports whether the window should close.
func (p *painter) action(name string) bool {
	switch name {
	case ActionDraw:
		p.a.Tool = stroke.Draw
	case ActionErase:
		p.a.Tool = stroke.Erase
	case ActionShrink, ActionGrow:
		p.a.BrushSize = stepBrush(p.a.BrushSize, name == ActionGrow)
	case ActionUndo:
		if !p.e.Undo() {
			p.st.show("nothing to undo")
		}
	case ActionRedo:
		if !p.e.Redo() {
			p.st.show("nothing to redo")
		}
	case ActionClear:
		p.e.Clear()
		p.st.show("mask cleared")
	case ActionSave:
		p.save()
	case ActionCopy:
		p.copy()
	case ActionPaste:
		read := p.a.readMask
		send := p.send
		go func() { send(decodeClipboardMask(read)) }()
	case ActionQuit:
		return true
	}
	return false
}

func (p *painter) save() {
	x := p.e.Export()
	if x.Empty() {
		p.st.show("no mask")
		return
	}
	if p.a.Output == "" {
		p.st.show("save: no output file")
		return
	}
	if err := p.a.writeFile(p.a.Output, x.PNG); err != nil {
		p.st.show("save: %v", err)
		return
	}
	p.st.show("saved %s", p.a.Output)
	p.a.Notifier.Export(p.a.Output)
}

func (p *painter) copy() {
	x := p.e.Export()
	if x.Empty() {
		p.st.show("no mask")
		return
	}
	if err := p.a.copyPNG(x.PNG); err != nil {
		p.st.show("copy: %v", err)
		return
	}
	p.st.show("mask copied to clipboard")
	p.a.Notifier.Copy("mask")
}

func (p *painter) addMask(ev maskDecoded) {
	if ev.err != nil {
		p.st.show("paste: %v", ev.err)
		return
	}
	if err := p.e.AddRasterMask(ev.img); err != nil {
		p.st.show("paste: %v", err)
		return
	}
	p.st.show("mask pasted")
}

func (p *painter) statusLine() string {
	undo, redo := "-", "-"
	if p.e.CanUndo() {
		undo = "undo"
	}
	if p.e.CanRedo() {
		redo = "redo"
	}
	return fmt.Sprintf("%s %gpx  %s/%s  B draw  E erase  [ ] size  ^Z ^Y  Del clear  ^S save  ^C copy  ^V paste  Q quit",
		p.a.Tool, p.a.BrushSize, undo, redo)
}

func (p *painter) state() paintState {
	return paintState{
		width:        p.width,
		height:       p.height,
		theme:        p.a.Theme,
		view:         p.e.View(),
		dst:          p.surface(),
		status:       p.statusLine(),
		message:      p.st.message,
		messageUntil: p.st.until,
	}
}
