package script

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/stroke"
)

func newEngine(t *testing.T) *mask.Engine {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}
	e := mask.New()
	e.LoadSource(src)
	e.Layout(100, 100)
	return e
}

func TestParse(t *testing.T) {
	in := `
# comment
size 20
tool erase
stroke 10,10 50,10   # trailing comment
down 1 2
move 3,4
up
layout 200 150
undo
`
	s, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(s.Commands) != 8 {
		t.Fatalf("got %d commands, want 8", len(s.Commands))
	}
	if c := s.Commands[0]; c.Op != OpSize || c.Value != 20 || c.Line != 3 {
		t.Fatalf("unexpected size command %+v", c)
	}
	if c := s.Commands[1]; c.Tool != stroke.Erase {
		t.Fatalf("unexpected tool %+v", c)
	}
	if c := s.Commands[2]; len(c.Points) != 2 || c.Points[1] != (stroke.Point{X: 50, Y: 10}) {
		t.Fatalf("unexpected stroke %+v", c)
	}
	if c := s.Commands[4]; c.Points[0] != (stroke.Point{X: 3, Y: 4}) {
		t.Fatalf("unexpected move %+v", c)
	}
	if c := s.Commands[6]; c.W != 200 || c.H != 150 {
		t.Fatalf("unexpected layout %+v", c)
	}
}

func TestParseErrorsCarryLine(t *testing.T) {
	cases := []struct {
		in   string
		line int
	}{
		{"size 10\nfly 1 2\n", 2},
		{"stroke 1,2 x,3\n", 1},
		{"\n\nsize -4\n", 3},
		{"tool lasso\n", 1},
		{"undo now\n", 1},
		{"down 5\nstroke\n", 1},
		{"mask\n", 1},
		{"layout 10 20 30\n", 1},
	}
	for _, tc := range cases {
		in, line := tc.in, tc.line
		_, err := Parse(strings.NewReader(in))
		var le *LineError
		if !errors.As(err, &le) {
			t.Fatalf("%q: got %v, want LineError", in, err)
		}
		if le.Line != line {
			t.Errorf("%q: line %d, want %d", in, le.Line, line)
		}
	}
}

func TestRunDrawAndUndo(t *testing.T) {
	e := newEngine(t)
	s, err := Parse(strings.NewReader("size 40\nstroke 10,10 50,10\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := NewRunner("").Run(e, s); err != nil {
		t.Fatalf("run: %v", err)
	}
	x := e.Export()
	if x.Empty() || x.Image.RGBAAt(30, 10).A != 0 {
		t.Fatal("expected a transparent band")
	}
	s, _ = Parse(strings.NewReader("undo\n"))
	NewRunner("").Run(e, s)
	if !e.Export().Empty() {
		t.Fatal("undo should leave no mask")
	}
}

func TestRunCommitsOpenGesture(t *testing.T) {
	e := newEngine(t)
	s, _ := Parse(strings.NewReader("down 10 10\nmove 20 20\n"))
	if err := NewRunner("").Run(e, s); err != nil {
		t.Fatalf("run: %v", err)
	}
	if e.Drawing() || e.Len() != 1 {
		t.Fatalf("open gesture not committed, len=%d", e.Len())
	}
}

func TestRunMaskRelativeToDir(t *testing.T) {
	dir := t.TempDir()
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		m.SetNRGBA(i%2, i/2, color.NRGBA{A: 255})
	}
	data, err := raster.EncodePNG(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sel.png"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	scriptPath := filepath.Join(dir, "edit.txt")
	if err := os.WriteFile(scriptPath, []byte("mask sel.png\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	e := newEngine(t)
	if err := NewRunner("").RunFile(e, scriptPath); err != nil {
		t.Fatalf("run file: %v", err)
	}
	if e.Len() != 1 || e.History()[0].Raster == nil {
		t.Fatal("expected a raster mask item")
	}
}

func TestRunBadMaskReportsLine(t *testing.T) {
	e := newEngine(t)
	r := NewRunner("")
	r.ReadFile = func(string) ([]byte, error) { return []byte("junk"), nil }
	s, _ := Parse(strings.NewReader("stroke 5,5\nmask bad.png\n"))
	err := r.Run(e, s)
	var le *LineError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Fatalf("got %v, want error on line 2", err)
	}
	if e.Len() != 1 {
		t.Fatalf("history len %d, want 1", e.Len())
	}
}
