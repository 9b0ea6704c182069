// Package appstate hosts the mask engine and the refinement brush in a
// desktop window. It owns the event loop and is the only goroutine that
// touches the engine.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/paint"

	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/notify"
	"github.com/example/maskbrush/internal/refine"
	"github.com/example/maskbrush/internal/stroke"
	"github.com/example/maskbrush/internal/theme"
)

const (
	minBrush = 1
	maxBrush = 400
)

// AppState holds application configuration for the UI.
type AppState struct {
	Engine *mask.Engine
	Editor *refine.Editor
	Theme  *theme.Theme
	Output string
	Title  string

	BrushSize  float64
	Tool       stroke.Tool
	RefineTool refine.Tool

	Notifier *notify.Notifier

	// Clipboard hooks, replaced in tests.
	copyPNG   func([]byte) error
	readMask  func() ([]byte, string, error)
	writeFile func(path string, data []byte) error

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEngine shows the mask painting window for e.
func WithEngine(e *mask.Engine) Option { return func(a *AppState) { a.Engine = e } }

// WithEditor shows the refinement window for ed instead of the painter.
func WithEditor(ed *refine.Editor) Option { return func(a *AppState) { a.Editor = ed } }

// WithTheme sets the window palette.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithBrush sets the initial brush diameter and paint tool.
func WithBrush(size float64, tool stroke.Tool) Option {
	return func(a *AppState) {
		a.BrushSize = size
		a.Tool = tool
	}
}

// WithRefineTool sets the initial refinement tool.
func WithRefineTool(t refine.Tool) Option { return func(a *AppState) { a.RefineTool = t } }

// WithNotifier reports saves, copies and refinements through n.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Theme:     theme.Default(),
		Title:     "maskbrush",
		BrushSize: refine.DefaultBrushSize,
		copyPNG:   copyPNG,
		readMask:  readMask,
		writeFile: writeFile,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	a.BrushSize = clampBrush(a.BrushSize)
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	var bounds image.Rectangle
	switch {
	case a.Editor != nil:
		bounds = a.Editor.Size().Rect()
	case a.Engine != nil && a.Engine.Source() != nil:
		bounds = a.Engine.Source().Bounds()
	default:
		log.Print("appstate: nothing to show")
		return
	}
	width, height := initialSize(bounds)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	f := newFrames(s, w)
	defer f.stop()

	if a.Editor != nil {
		a.refineLoop(w, f, width, height)
		return
	}
	a.paintLoop(w, f, width, height)
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// frames renders paint states on a separate goroutine, cancelling a frame
// in flight when a newer one arrives.
type frames struct {
	ch        chan paintState
	mu        sync.Mutex
	cancel    context.CancelFunc
	dropCount int
}

func newFrames(s screen.Screen, w screen.Window) *frames {
	f := &frames{ch: make(chan paintState, 1)}
	go func() {
		for st := range f.ch {
			ctx, cancel := context.WithCancel(context.Background())
			f.mu.Lock()
			f.cancel = cancel
			f.mu.Unlock()
			drawFrame(ctx, s, w, st)
			f.mu.Lock()
			f.cancel = nil
			if ctx.Err() == nil {
				f.dropCount = 0
			}
			f.mu.Unlock()
			cancel()
		}
	}()
	return f
}

func (f *frames) submit(st paintState) {
	f.mu.Lock()
	if f.cancel != nil && f.dropCount < frameDropThreshold {
		f.cancel()
		f.dropCount++
	}
	f.mu.Unlock()
	select {
	case f.ch <- st:
	default:
		select {
		case <-f.ch:
		default:
		}
		f.ch <- st
	}
}

func (f *frames) stop() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()
	close(f.ch)
}

// status carries a transient message shown in place of the status line.
type status struct {
	message string
	until   time.Time
}

func (st *status) show(format string, args ...any) {
	st.message = fmt.Sprintf(format, args...)
	st.until = time.Now().Add(2 * time.Second)
	log.Print(st.message)
}

// repaint asks the loop for a new frame.
func repaint(w screen.Window) { w.Send(paint.Event{}) }

func clampBrush(v float64) float64 {
	if !(v > 0) {
		return refine.DefaultBrushSize
	}
	return limitBrush(v)
}

func limitBrush(v float64) float64 { return math.Min(math.Max(v, minBrush), maxBrush) }

// stepBrush grows or shrinks a brush diameter by roughly a fifth, always
// moving by at least one pixel.
func stepBrush(v float64, grow bool) float64 {
	d := math.Max(1, math.Round(v/5))
	if grow {
		return limitBrush(v + d)
	}
	return limitBrush(v - d)
}
