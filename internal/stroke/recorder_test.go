package stroke

import (
	"testing"

	"github.com/example/maskbrush/internal/geometry"
)

func TestRecorderLifecycle(t *testing.T) {
	var r Recorder
	basis := geometry.Size{W: 100, H: 100}
	if r.Drawing() {
		t.Fatal("new recorder should be idle")
	}
	dot := r.Begin(Point{10, 10}, Draw, 40, basis)
	if !dot.Dot() || dot.Size != 40 || dot.Tool != Draw {
		t.Fatalf("unexpected feedback %+v", dot)
	}
	seg, ok := r.Extend(Point{50, 10})
	if !ok {
		t.Fatal("extend while drawing should succeed")
	}
	if seg.From != (Point{10, 10}) || seg.To != (Point{50, 10}) || seg.Dot() {
		t.Fatalf("unexpected segment %+v", seg)
	}
	s, ok := r.End()
	if !ok {
		t.Fatal("end while drawing should succeed")
	}
	if len(s.Points) != 2 || s.Size != 40 || s.Basis != basis {
		t.Fatalf("unexpected stroke %+v", s)
	}
	if r.Drawing() {
		t.Fatal("recorder should be idle after End")
	}
}

func TestRecorderCurrent(t *testing.T) {
	var r Recorder
	if _, ok := r.Current(); ok {
		t.Fatal("idle recorder has no current stroke")
	}
	r.Begin(Point{1, 1}, Erase, 8, geometry.Size{W: 10, H: 10})
	r.Extend(Point{5, 5})
	s, ok := r.Current()
	if !ok || s.Tool != Erase || len(s.Points) != 2 {
		t.Fatalf("unexpected current stroke %+v", s)
	}
	s.Points[0] = Point{9, 9}
	if got, _ := r.Current(); got.Points[0] != (Point{1, 1}) {
		t.Fatal("current stroke should be a copy")
	}
}

func TestRecorderIgnoresMovesWhileIdle(t *testing.T) {
	var r Recorder
	if _, ok := r.Extend(Point{1, 1}); ok {
		t.Fatal("extend while idle should be ignored")
	}
	if _, ok := r.End(); ok {
		t.Fatal("end while idle should be ignored")
	}
}

func TestRecorderSinglePoint(t *testing.T) {
	var r Recorder
	r.Begin(Point{5, 6}, Erase, 8, geometry.Size{W: 10, H: 10})
	s, ok := r.End()
	if !ok || len(s.Points) != 1 || s.Tool != Erase {
		t.Fatalf("unexpected stroke %+v ok=%v", s, ok)
	}
}

func TestRecorderBrushSizeFixedAtBegin(t *testing.T) {
	var r Recorder
	r.Begin(Point{0, 0}, Draw, 12, geometry.Size{W: 10, H: 10})
	seg, _ := r.Extend(Point{1, 1})
	if seg.Size != 12 {
		t.Fatalf("segment size %v, want 12", seg.Size)
	}
}

func TestRecorderAbort(t *testing.T) {
	var r Recorder
	r.Begin(Point{0, 0}, Draw, 12, geometry.Size{W: 10, H: 10})
	r.Abort()
	if _, ok := r.End(); ok {
		t.Fatal("aborted gesture should not produce a stroke")
	}
}

func TestStrokeRescaled(t *testing.T) {
	s := Stroke{Tool: Draw, Size: 10, Points: []Point{{10, 20}}, Basis: geometry.Size{W: 100, H: 100}}
	got := s.Rescaled(geometry.Size{W: 200, H: 200})
	if got.Points[0] != (Point{20, 40}) || got.Size != 20 {
		t.Fatalf("unexpected rescale %+v", got)
	}
	if s.Points[0] != (Point{10, 20}) {
		t.Fatal("rescale must not mutate the original")
	}
	same := s.Rescaled(s.Basis)
	if same.Size != 10 {
		t.Fatalf("identity rescale changed size to %v", same.Size)
	}
}

func TestParseTool(t *testing.T) {
	if tool, err := ParseTool("Erase"); err != nil || tool != Erase {
		t.Fatalf("got %v, %v", tool, err)
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}
