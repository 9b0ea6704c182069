package stroke

import "github.com/example/maskbrush/internal/geometry"

// Recorder turns pointer down/move/up into a single Stroke. The zero value
// is idle and ready to use.
type Recorder struct {
	drawing bool
	current Stroke
}

// Drawing reports whether a gesture is in progress.
func (r *Recorder) Drawing() bool { return r.drawing }

// Begin starts a stroke at p and returns the dot to paint for feedback. A
// gesture already in progress is replaced.
func (r *Recorder) Begin(p Point, tool Tool, size float64, basis geometry.Size) Segment {
	r.drawing = true
	r.current = Stroke{Tool: tool, Size: size, Points: []Point{p}, Basis: basis}
	return Segment{Tool: tool, Size: size, From: p, To: p}
}

// Current returns the stroke in progress. ok is false while idle.
func (r *Recorder) Current() (s Stroke, ok bool) {
	if !r.drawing {
		return Stroke{}, false
	}
	s = r.current
	s.Points = append([]Point(nil), r.current.Points...)
	return s, true
}

// Extend appends p to the stroke in progress and returns the segment from
// the previous point. ok is false while idle.
func (r *Recorder) Extend(p Point) (seg Segment, ok bool) {
	if !r.drawing {
		return Segment{}, false
	}
	prev := r.current.Points[len(r.current.Points)-1]
	r.current.Points = append(r.current.Points, p)
	return Segment{Tool: r.current.Tool, Size: r.current.Size, From: prev, To: p}, true
}

// End finishes the gesture and hands back the stroke to commit. ok is false
// while idle.
func (r *Recorder) End() (s Stroke, ok bool) {
	if !r.drawing {
		return Stroke{}, false
	}
	s = r.current
	r.drawing = false
	r.current = Stroke{}
	return s, true
}

// Abort drops the gesture in progress without producing a stroke.
func (r *Recorder) Abort() {
	r.drawing = false
	r.current = Stroke{}
}
