package mask

import (
	"image"

	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

// RasterMask is an externally supplied mask image. It is stretched to fill
// the surface and its alpha is used as coverage.
type RasterMask struct {
	Raster image.Image

	scaled *image.Alpha
}

func (m *RasterMask) coverage(bounds image.Rectangle) *image.Alpha {
	if m.scaled == nil || !m.scaled.Rect.Eq(bounds) {
		m.scaled = raster.CoverageOf(m.Raster, bounds)
	}
	return m.scaled
}

// Item is one committed history entry. Exactly one field is set.
type Item struct {
	Stroke *stroke.Stroke
	Raster *RasterMask
}

// StrokeItem wraps a stroke for the history log.
func StrokeItem(s stroke.Stroke) Item { return Item{Stroke: &s} }

// RasterItem wraps a decoded raster mask for the history log.
func RasterItem(img image.Image) Item { return Item{Raster: &RasterMask{Raster: img}} }

// Kind names the item for logs and listings.
func (it Item) Kind() string {
	switch {
	case it.Stroke != nil:
		return it.Stroke.Tool.String()
	case it.Raster != nil:
		return "image"
	}
	return "none"
}
