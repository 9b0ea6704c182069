package mask

import (
	"image"
	"time"

	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

// replay rebuilds the coverage buffer from the applied history items, then
// repaints the feedback of a stroke still in progress on top.
func (e *Engine) replay() {
	if !e.ready() {
		return
	}
	start := time.Now()
	raster.Clear(e.coverage)
	items := e.log.Active()
	for _, it := range items {
		e.apply(it)
	}
	if s, ok := e.rec.Current(); ok {
		e.blend(s.Tool, e.brush.Polyline(s.Points, s.Size))
	}
	Logger().Debug("mask replayed", "items", len(items), "size", e.viewport.Surface, "elapsed", time.Since(start))
}

func (e *Engine) apply(it Item) {
	switch {
	case it.Stroke != nil:
		s := it.Stroke.Rescaled(e.viewport.Surface)
		e.blend(s.Tool, e.brush.Polyline(s.Points, s.Size))
	case it.Raster != nil:
		raster.SourceOver(e.coverage, it.Raster.coverage(e.coverage.Rect), 1)
	}
}

// paint applies live feedback for a stroke in progress with the same rule
// replay uses. Replay overwrites it once the stroke commits.
func (e *Engine) paint(seg stroke.Segment) {
	e.blend(seg.Tool, e.brush.Segment(seg))
}

func (e *Engine) blend(tool stroke.Tool, cov *image.Alpha) {
	if cov == nil {
		return
	}
	switch tool {
	case stroke.Erase:
		raster.DestinationOut(e.coverage, cov)
	default:
		raster.SourceOver(e.coverage, cov, e.strength)
	}
}
