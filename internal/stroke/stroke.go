// Package stroke records pointer gestures as brush strokes.
package stroke

import (
	"fmt"
	"strings"

	"github.com/example/maskbrush/internal/geometry"
)

// Tool selects how a stroke affects the selection.
type Tool int

const (
	// Draw adds coverage.
	Draw Tool = iota
	// Erase removes coverage.
	Erase
)

func (t Tool) String() string {
	switch t {
	case Draw:
		return "draw"
	case Erase:
		return "erase"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ParseTool converts a tool name into a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draw", "brush", "paint":
		return Draw, nil
	case "erase", "eraser":
		return Erase, nil
	}
	return Draw, fmt.Errorf("unknown tool %q", s)
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Scale returns p with each axis multiplied by the given factors.
func (p Point) Scale(sx, sy float64) Point { return Point{X: p.X * sx, Y: p.Y * sy} }

// Stroke is one continuous pointer gesture.
type Stroke struct {
	Tool Tool
	// Size is the brush diameter in surface pixels at commit time.
	Size   float64
	Points []Point
	// Basis is the surface size the points were recorded on.
	Basis geometry.Size
}

// Rescaled returns a copy of the stroke expressed on the target surface.
// Brush size follows the mean of the two axis factors.
func (s Stroke) Rescaled(target geometry.Size) Stroke {
	sx, sy := geometry.Scale(s.Basis, target)
	if sx == 1 && sy == 1 {
		return s
	}
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Scale(sx, sy)
	}
	return Stroke{
		Tool:   s.Tool,
		Size:   s.Size * (sx + sy) / 2,
		Points: pts,
		Basis:  target,
	}
}

// Segment is the piece of a stroke that needs painting as live feedback.
// A Segment with From == To is a dot.
type Segment struct {
	Tool     Tool
	Size     float64
	From, To Point
}

// Dot reports whether the segment is a single dab.
func (s Segment) Dot() bool { return s.From == s.To }
