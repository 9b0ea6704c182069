// Package mask is the mask-authoring engine. It records brush strokes and
// imported raster masks in an undo log, replays the log into a coverage
// buffer and derives the masked export handed to the edit service.
//
// An Engine is owned by a single event loop and is not safe for concurrent
// use.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/history"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

// DefaultSelectionColor is the translucent pink used to show coverage.
var DefaultSelectionColor = color.NRGBA{R: 236, G: 72, B: 153, A: 128}

// ErrEmptyRaster is returned when a raster mask has no pixels.
var ErrEmptyRaster = errors.New("raster mask is empty")

// Option configures an Engine.
type Option func(*Engine)

// WithSelectionColor sets the colour Overlay tints coverage with.
func WithSelectionColor(c color.NRGBA) Option { return func(e *Engine) { e.selection = c } }

// WithCoverage sets the strength, in [0, 1], that draw strokes add.
func WithCoverage(v float64) Option { return func(e *Engine) { e.strength = v } }

// WithFeather softens the exported mask edge by radius pixels. Coverage and
// the overlay are unaffected.
func WithFeather(radius int) Option { return func(e *Engine) { e.feather = radius } }

// WithMaskReady registers the callback receiving every recomputed export.
// An empty Export means nothing is selected.
func WithMaskReady(fn func(Export)) Option { return func(e *Engine) { e.onMaskReady = fn } }

// WithHistoryListener registers a callback for undo/redo availability.
func WithHistoryListener(fn func(canUndo, canRedo bool)) Option {
	return func(e *Engine) { e.onHistory = fn }
}

type layoutRequest struct {
	w, h float64
}

// Engine owns the mask surface for one source image.
type Engine struct {
	selection   color.NRGBA
	strength    float64
	feather     int
	onMaskReady func(Export)
	onHistory   func(canUndo, canRedo bool)

	source   image.Image
	viewport geometry.Viewport
	layout   *layoutRequest
	pending  *layoutRequest

	display  *image.RGBA
	coverage *image.Alpha
	brush    *raster.Brush

	rec    stroke.Recorder
	log    *history.Log[Item]
	export Export
}

// New creates an Engine with no source.
func New(opts ...Option) *Engine {
	e := &Engine{
		selection: DefaultSelectionColor,
		strength:  1,
		log:       history.New[Item](),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// LoadSource starts a new session on img. History is discarded and the
// surface is refitted to the last known container.
func (e *Engine) LoadSource(img image.Image) {
	e.source = img
	e.rec.Abort()
	e.pending = nil
	e.log = history.New[Item]()
	e.display, e.coverage, e.brush = nil, nil, nil
	e.viewport.Surface = geometry.Size{}
	if e.layout != nil {
		e.resize(e.layout.w, e.layout.h)
	}
	e.changed()
}

// LoadSourceBytes decodes data and loads it as the source.
func (e *Engine) LoadSourceBytes(data []byte) error {
	img, _, err := raster.Decode(data)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	e.LoadSource(img)
	return nil
}

// Source returns the current source image.
func (e *Engine) Source() image.Image { return e.source }

// Layout fits the surface into a container of the given size. A call made
// while a stroke is in progress takes effect when the stroke commits.
func (e *Engine) Layout(containerW, containerH float64) {
	if e.rec.Drawing() {
		e.pending = &layoutRequest{w: containerW, h: containerH}
		return
	}
	if e.resize(containerW, containerH) {
		e.changed()
	}
}

// resize recomputes the surface and reports whether it changed.
func (e *Engine) resize(w, h float64) bool {
	e.layout = &layoutRequest{w: w, h: h}
	size := geometry.FitImage(w, h, e.source)
	if size == e.viewport.Surface && (size.Empty() || e.coverage != nil) {
		return false
	}
	e.viewport.Surface = size
	if size.Empty() {
		e.display, e.coverage, e.brush = nil, nil, nil
		return true
	}
	bounds := size.Rect()
	e.display = raster.ScaleToFill(e.source, bounds)
	e.coverage = image.NewAlpha(bounds)
	e.brush = raster.NewBrush(bounds)
	return true
}

// SetViewport records where the host placed the surface on screen, in
// client coordinates. A zero display size maps client pixels one to one.
func (e *Engine) SetViewport(originX, originY, displayW, displayH float64) {
	e.viewport.OriginX, e.viewport.OriginY = originX, originY
	e.viewport.DisplayW, e.viewport.DisplayH = displayW, displayH
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() geometry.Viewport { return e.viewport }

// Size returns the surface size; the zero Size before the first layout.
func (e *Engine) Size() geometry.Size { return e.viewport.Surface }

func (e *Engine) ready() bool { return e.coverage != nil }

func (e *Engine) toSurface(clientX, clientY float64) stroke.Point {
	x, y := e.viewport.ToSurface(clientX, clientY)
	return stroke.Point{X: x, Y: y}
}

// PointerDown starts a stroke with the given tool and brush diameter and
// paints a dot as feedback. It does nothing before the first layout.
func (e *Engine) PointerDown(clientX, clientY float64, tool stroke.Tool, size float64) {
	if !e.ready() || !(size > 0) {
		return
	}
	seg := e.rec.Begin(e.toSurface(clientX, clientY), tool, size, e.viewport.Surface)
	e.paint(seg)
}

// PointerMove extends the stroke in progress.
func (e *Engine) PointerMove(clientX, clientY float64) {
	if !e.ready() {
		return
	}
	if seg, ok := e.rec.Extend(e.toSurface(clientX, clientY)); ok {
		e.paint(seg)
	}
}

// PointerUp commits the stroke in progress.
func (e *Engine) PointerUp() {
	s, ok := e.rec.End()
	if !ok {
		return
	}
	e.log.Commit(StrokeItem(s))
	if p := e.pending; p != nil {
		e.pending = nil
		e.resize(p.w, p.h)
	}
	e.changed()
}

// PointerLeave ends the stroke as if the pointer had been released.
func (e *Engine) PointerLeave() { e.PointerUp() }

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool { return e.rec.Drawing() }

// CommitStroke appends a finished stroke. A stroke without a basis is taken
// to be recorded on the current surface.
func (e *Engine) CommitStroke(s stroke.Stroke) {
	if s.Basis.Empty() {
		s.Basis = e.viewport.Surface
	}
	e.log.Commit(StrokeItem(s))
	e.changed()
}

// AddRasterMask appends a decoded mask image. Its alpha becomes coverage.
func (e *Engine) AddRasterMask(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyRaster
	}
	e.log.Commit(RasterItem(img))
	e.changed()
	return nil
}

// AddRasterMaskBytes decodes data and appends it as a raster mask. History
// is untouched when decoding fails.
func (e *Engine) AddRasterMaskBytes(data []byte) error {
	img, format, err := raster.Decode(data)
	if err != nil {
		Logger().Warn("raster mask rejected", "err", err)
		return fmt.Errorf("add raster mask: %w", err)
	}
	Logger().Debug("raster mask decoded", "format", format, "bounds", img.Bounds())
	return e.AddRasterMask(img)
}

// AddRasterMaskDataURL is AddRasterMaskBytes for a data URL.
func (e *Engine) AddRasterMaskDataURL(s string) error {
	img, err := raster.DecodeDataURL(s)
	if err != nil {
		Logger().Warn("raster mask rejected", "err", err)
		return fmt.Errorf("add raster mask: %w", err)
	}
	return e.AddRasterMask(img)
}

// Undo steps back one item. It reports false when there is nothing to undo.
func (e *Engine) Undo() bool {
	if !e.log.Undo() {
		return false
	}
	e.changed()
	return true
}

// Redo re-applies the next item. It reports false when there is nothing to
// redo.
func (e *Engine) Redo() bool {
	if !e.log.Redo() {
		return false
	}
	e.changed()
	return true
}

// Clear empties the history.
func (e *Engine) Clear() {
	e.log.Clear()
	e.changed()
}

// CanUndo reports whether Undo would do something.
func (e *Engine) CanUndo() bool { return e.log.CanUndo() }

// CanRedo reports whether Redo would do something.
func (e *Engine) CanRedo() bool { return e.log.CanRedo() }

// History returns the applied items in order. The slice must not be
// modified.
func (e *Engine) History() []Item { return e.log.Active() }

// Len returns the number of logged items including redo-pending ones.
func (e *Engine) Len() int { return e.log.Len() }

// Coverage returns the live mask surface, including feedback of a stroke
// in progress. It is nil before the first layout.
func (e *Engine) Coverage() *image.Alpha { return e.coverage }

// Export returns the export computed after the last history change.
func (e *Engine) Export() Export { return e.export }

// Overlay returns the coverage tinted with the selection colour.
func (e *Engine) Overlay() *image.RGBA {
	if !e.ready() {
		return nil
	}
	return raster.Tint(e.coverage, e.selection)
}

// View returns the displayed source with the selection overlay on top.
func (e *Engine) View() *image.RGBA {
	if !e.ready() {
		return nil
	}
	out := image.NewRGBA(e.display.Rect)
	copy(out.Pix, e.display.Pix)
	draw.Draw(out, out.Rect, e.Overlay(), out.Rect.Min, draw.Over)
	return out
}

// changed recomputes coverage and export from history and notifies
// listeners.
func (e *Engine) changed() {
	e.replay()
	e.export = e.extract()
	if e.onMaskReady != nil {
		e.onMaskReady(e.export)
	}
	if e.onHistory != nil {
		e.onHistory(e.log.CanUndo(), e.log.CanRedo())
	}
}
