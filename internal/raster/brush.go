package raster

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/example/maskbrush/internal/stroke"
)

// Brush rasterises round brush geometry into coverage buffers. It owns a
// scratch RGBA the size of the surface; only the bounding box of each shape
// is cleared and read back. A Brush is not safe for concurrent use.
type Brush struct {
	bounds  image.Rectangle
	scratch *image.RGBA
	dc      *gg.Context
}

// NewBrush returns a Brush for a surface with the given bounds.
func NewBrush(bounds image.Rectangle) *Brush {
	scratch := image.NewRGBA(image.Rect(0, 0, bounds.Max.X, bounds.Max.Y))
	dc := gg.NewContextForRGBA(scratch)
	dc.SetRGBA(1, 1, 1, 1)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &Brush{bounds: bounds, scratch: scratch, dc: dc}
}

// Bounds returns the surface bounds the brush paints into.
func (b *Brush) Bounds() image.Rectangle { return b.bounds }

// Polyline returns the coverage of a round-capped, round-joined polyline of
// diameter size through pts. A single distinct point yields a filled disc.
// The result is clipped to the brush bounds and is nil when nothing lands
// on the surface.
func (b *Brush) Polyline(pts []stroke.Point, size float64) *image.Alpha {
	pts = dedupe(pts)
	if len(pts) == 0 || !(size > 0) {
		return nil
	}
	r := shapeBounds(pts, size).Intersect(b.bounds)
	if r.Empty() {
		return nil
	}
	b.reset(r)
	b.dc.ClearPath()
	if len(pts) == 1 {
		b.dc.DrawCircle(pts[0].X, pts[0].Y, size/2)
		b.dc.Fill()
	} else {
		b.dc.SetLineWidth(size)
		b.dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			b.dc.LineTo(p.X, p.Y)
		}
		b.dc.Stroke()
	}
	return b.readBack(r)
}

// Segment returns the coverage of the live feedback for seg.
func (b *Brush) Segment(seg stroke.Segment) *image.Alpha {
	if seg.Dot() {
		return b.Polyline([]stroke.Point{seg.From}, seg.Size)
	}
	return b.Polyline([]stroke.Point{seg.From, seg.To}, seg.Size)
}

// Dab returns the coverage of a single disc of the given diameter.
func (b *Brush) Dab(p stroke.Point, size float64) *image.Alpha {
	return b.Polyline([]stroke.Point{p}, size)
}

func (b *Brush) reset(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.scratch.PixOffset(r.Min.X, y)
		clear(b.scratch.Pix[i : i+4*r.Dx()])
	}
}

func (b *Brush) readBack(r image.Rectangle) *image.Alpha {
	cov := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := b.scratch.PixOffset(r.Min.X, y)
		di := cov.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			cov.Pix[di+x] = b.scratch.Pix[si+4*x+3]
		}
	}
	return cov
}

// dedupe drops consecutive repeated points, which would otherwise produce
// degenerate zero-length segments.
func dedupe(pts []stroke.Point) []stroke.Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]stroke.Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func shapeBounds(pts []stroke.Point, size float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	pad := size/2 + 2
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}
