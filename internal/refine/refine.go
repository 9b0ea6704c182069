// Package refine edits a generated result in place with erase and restore
// brushes. There is no history: Apply hands back the working raster and
// Cancel reverts to the raster the session started with.
package refine

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

// DefaultBrushSize is the dab diameter used when none is configured.
const DefaultBrushSize = 40

// Tool selects what a dab does to the working raster.
type Tool int

const (
	// Erase punches a transparent hole.
	Erase Tool = iota
	// Restore copies the original pixels back.
	Restore
)

func (t Tool) String() string {
	if t == Restore {
		return "restore"
	}
	return "erase"
}

// ParseTool converts a tool name into a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "erase", "eraser":
		return Erase, nil
	case "restore":
		return Restore, nil
	}
	return Erase, fmt.Errorf("unknown refine tool %q", s)
}

// Option configures an Editor.
type Option func(*Editor)

// WithSpacing fixes the distance between dabs along a drag. Zero selects a
// quarter of the brush diameter.
func WithSpacing(px float64) Option { return func(ed *Editor) { ed.spacing = px } }

// WithApplied registers the callback receiving the PNG produced by Apply.
func WithApplied(fn func([]byte)) Option { return func(ed *Editor) { ed.onApplied = fn } }

// WithCancelled registers the callback fired by Cancel.
func WithCancelled(fn func()) Option { return func(ed *Editor) { ed.onCancelled = fn } }

// Editor applies brush dabs straight onto a working raster.
type Editor struct {
	spacing     float64
	onApplied   func([]byte)
	onCancelled func()

	viewport geometry.Viewport
	working  *image.RGBA
	original *image.RGBA
	snapshot *image.RGBA
	brush    *raster.Brush

	drawing bool
	tool    Tool
	size    float64
	last    stroke.Point
}

// New starts a refinement of base on a surface of the given size. original
// is the untouched image Restore paints from; both are stretched to the
// surface.
func New(base, original image.Image, size geometry.Size, opts ...Option) (*Editor, error) {
	if size.Empty() {
		return nil, fmt.Errorf("refine: empty surface %dx%d", size.W, size.H)
	}
	if base == nil || original == nil {
		return nil, fmt.Errorf("refine: missing image")
	}
	bounds := size.Rect()
	ed := &Editor{
		viewport: geometry.Viewport{Surface: size},
		working:  raster.ScaleToFill(base, bounds),
		original: raster.ScaleToFill(original, bounds),
		brush:    raster.NewBrush(bounds),
	}
	ed.snapshot = clone(ed.working)
	for _, o := range opts {
		o(ed)
	}
	return ed, nil
}

func clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// SetViewport records where the surface is shown, as for mask.Engine.
func (ed *Editor) SetViewport(originX, originY, displayW, displayH float64) {
	ed.viewport.OriginX, ed.viewport.OriginY = originX, originY
	ed.viewport.DisplayW, ed.viewport.DisplayH = displayW, displayH
}

// Size returns the surface size.
func (ed *Editor) Size() geometry.Size { return ed.viewport.Surface }

// Image returns the working raster.
func (ed *Editor) Image() *image.RGBA { return ed.working }

// Drawing reports whether a drag is in progress.
func (ed *Editor) Drawing() bool { return ed.drawing }

func (ed *Editor) toSurface(clientX, clientY float64) stroke.Point {
	x, y := ed.viewport.ToSurface(clientX, clientY)
	return stroke.Point{X: x, Y: y}
}

// PointerDown applies one dab and starts a drag.
func (ed *Editor) PointerDown(clientX, clientY float64, tool Tool, size float64) {
	if !(size > 0) {
		return
	}
	ed.drawing = true
	ed.tool = tool
	ed.size = size
	ed.last = ed.toSurface(clientX, clientY)
	ed.dab(ed.last)
}

// PointerMove dabs along the straight segment from the previous sample so
// fast drags leave no gaps.
func (ed *Editor) PointerMove(clientX, clientY float64) {
	if !ed.drawing {
		return
	}
	p := ed.toSurface(clientX, clientY)
	dx, dy := p.X-ed.last.X, p.Y-ed.last.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	steps := int(math.Ceil(dist / ed.step()))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ed.dab(stroke.Point{X: ed.last.X + dx*t, Y: ed.last.Y + dy*t})
	}
	ed.last = p
}

// PointerUp ends the drag.
func (ed *Editor) PointerUp() { ed.drawing = false }

// PointerLeave ends the drag.
func (ed *Editor) PointerLeave() { ed.drawing = false }

// step returns the dab spacing, always below the brush diameter.
func (ed *Editor) step() float64 {
	s := ed.spacing
	if s <= 0 {
		s = math.Max(1, ed.size/4)
	}
	if s >= ed.size {
		s = math.Max(ed.size/2, 0.5)
	}
	return s
}

func (ed *Editor) dab(p stroke.Point) {
	cov := ed.brush.Dab(p, ed.size)
	if cov == nil {
		return
	}
	switch ed.tool {
	case Restore:
		draw.DrawMask(ed.working, cov.Rect, ed.original, cov.Rect.Min, cov, cov.Rect.Min, draw.Over)
	default:
		raster.DestinationOutRGBA(ed.working, cov)
	}
}

// Apply encodes the working raster as PNG and reports it to the applied
// callback.
func (ed *Editor) Apply() ([]byte, error) {
	ed.drawing = false
	data, err := raster.EncodePNG(ed.working)
	if err != nil {
		mask.Logger().Warn("refine apply failed", "err", err)
		return nil, fmt.Errorf("refine apply: %w", err)
	}
	if ed.onApplied != nil {
		ed.onApplied(data)
	}
	return data, nil
}

// Cancel restores the raster the editor started from.
func (ed *Editor) Cancel() {
	ed.drawing = false
	copy(ed.working.Pix, ed.snapshot.Pix)
	if ed.onCancelled != nil {
		ed.onCancelled()
	}
}
