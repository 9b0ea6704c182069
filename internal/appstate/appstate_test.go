package appstate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/refine"
	"github.com/example/maskbrush/internal/stroke"
	"github.com/example/maskbrush/internal/theme"
)

func opaque(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// newPainter lays a 100x100 source out in a window whose canvas is
// exactly 100x100.
func newPainter(t *testing.T, opts ...Option) *painter {
	t.Helper()
	e := mask.New()
	e.LoadSource(opaque(100, 100, color.NRGBA{90, 120, 150, 255}))
	a := New(append([]Option{WithEngine(e), WithBrush(20, stroke.Draw)}, opts...)...)
	p := &painter{a: a, e: e, send: func(any) {}}
	p.resize(100, 100+statusHeight)
	if got := e.Size(); got.W != 100 || got.H != 100 {
		t.Fatalf("surface %+v, want 100x100", got)
	}
	return p
}

func press(x, y float32, b mouse.Button) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: b, Direction: mouse.DirPress}
}

func drag(x, y float32) mouse.Event { return mouse.Event{X: x, Y: y, Direction: mouse.DirNone} }

func release(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func TestSurfaceRectCentres(t *testing.T) {
	got := surfaceRect(200, 100+statusHeight, geometry.Size{W: 100, H: 50})
	want := image.Rect(50, 25, 150, 75)
	if got != want {
		t.Fatalf("surface rect %v, want %v", got, want)
	}
	if !surfaceRect(200, 200, geometry.Size{}).Empty() {
		t.Fatal("empty surface should have an empty rect")
	}
}

func TestDisplayRectScales(t *testing.T) {
	got := displayRect(200, 100+statusHeight, geometry.Size{W: 400, H: 200})
	if got != image.Rect(0, 0, 200, 100) {
		t.Fatalf("display rect %v", got)
	}
}

func TestInitialSize(t *testing.T) {
	if w, h := initialSize(image.Rect(0, 0, 300, 200)); w != 300 || h != 200+statusHeight {
		t.Fatalf("small image window %dx%d", w, h)
	}
	w, h := initialSize(image.Rect(0, 0, 4000, 2000))
	if w != maxInitialW || h-statusHeight > maxInitialH {
		t.Fatalf("large image window %dx%d", w, h)
	}
}

func TestStepBrush(t *testing.T) {
	if got := stepBrush(40, true); got != 48 {
		t.Errorf("grow 40 = %v, want 48", got)
	}
	if got := stepBrush(40, false); got != 32 {
		t.Errorf("shrink 40 = %v, want 32", got)
	}
	if got := stepBrush(1, false); got != minBrush {
		t.Errorf("shrink 1 = %v, want %v", got, minBrush)
	}
	if got := stepBrush(maxBrush, true); got != maxBrush {
		t.Errorf("grow max = %v", got)
	}
}

func TestKeymapLookup(t *testing.T) {
	paint := PaintKeymap()
	cases := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"ctrl z", key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}, ActionUndo},
		{"ctrl shift z", key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}, ActionRedo},
		{"ctrl y", key.Event{Rune: 'y', Code: key.CodeY, Modifiers: key.ModControl}, ActionRedo},
		{"ctrl shift y", key.Event{Rune: 'Y', Code: key.CodeY, Modifiers: key.ModControl | key.ModShift}, ActionRedo},
		{"ctrl z without rune", key.Event{Rune: -1, Code: key.CodeZ, Modifiers: key.ModControl}, ActionUndo},
		{"shift b", key.Event{Rune: 'B', Code: key.CodeB, Modifiers: key.ModShift}, ActionDraw},
		{"delete", key.Event{Rune: 0x7f, Code: key.CodeDeleteForward}, ActionClear},
		{"bracket", key.Event{Rune: ']', Code: key.CodeRightSquareBracket}, ActionGrow},
	}
	for _, c := range cases {
		got, ok := paint.Lookup(c.ev)
		if !ok || got != c.want {
			t.Errorf("%s: got %q ok=%v, want %q", c.name, got, ok, c.want)
		}
	}
	if a, ok := paint.Lookup(key.Event{Rune: 'x', Code: key.CodeX}); ok {
		t.Errorf("unbound key resolved to %q", a)
	}
	if a, ok := RefineKeymap().Lookup(key.Event{Rune: '\r', Code: key.CodeReturnEnter}); !ok || a != ActionApply {
		t.Errorf("enter resolved to %q ok=%v", a, ok)
	}
}

func TestPainterStrokeAndUndo(t *testing.T) {
	p := newPainter(t)
	if !p.pointer(press(10, 50, mouse.ButtonLeft)) {
		t.Fatal("press on the surface should start a stroke")
	}
	p.pointer(drag(90, 50))
	p.pointer(release(90, 50))
	if !p.e.CanUndo() {
		t.Fatal("release should commit the stroke")
	}
	if p.e.Coverage().AlphaAt(50, 50).A == 0 {
		t.Fatal("stroke left no coverage")
	}
	p.action(ActionUndo)
	if p.e.CanUndo() || p.e.Coverage().AlphaAt(50, 50).A != 0 {
		t.Fatal("undo should remove the stroke")
	}
	p.action(ActionRedo)
	if !p.e.CanUndo() {
		t.Fatal("redo should bring the stroke back")
	}
}

func TestPainterRightButtonErases(t *testing.T) {
	p := newPainter(t)
	p.pointer(press(50, 50, mouse.ButtonLeft))
	p.pointer(release(50, 50))
	p.pointer(press(50, 50, mouse.ButtonRight))
	p.pointer(release(50, 50))
	items := p.e.History()
	if len(items) != 2 || items[1].Stroke.Tool != stroke.Erase {
		t.Fatalf("unexpected history %+v", items)
	}
	if p.a.Tool != stroke.Draw {
		t.Fatal("right button must not change the selected tool")
	}
}

func TestPainterSecondButtonKeepsStroke(t *testing.T) {
	p := newPainter(t)
	p.pointer(press(20, 20, mouse.ButtonLeft))
	p.pointer(drag(60, 20))
	if p.pointer(press(40, 40, mouse.ButtonRight)) {
		t.Fatal("a press during a drag should be ignored")
	}
	p.pointer(release(60, 20))
	items := p.e.History()
	if len(items) != 1 {
		t.Fatalf("history len %d, want 1", len(items))
	}
	if s := items[0].Stroke; s.Tool != stroke.Draw || len(s.Points) != 2 {
		t.Fatalf("unexpected stroke %+v", s)
	}
}

func TestPainterLeavingSurfaceCommits(t *testing.T) {
	p := newPainter(t)
	p.pointer(press(50, 50, mouse.ButtonLeft))
	p.pointer(drag(50, 99))
	p.pointer(drag(50, 110))
	if p.e.Drawing() || !p.e.CanUndo() {
		t.Fatal("leaving the surface should commit the stroke")
	}
}

func TestPainterPressOutsideIgnored(t *testing.T) {
	p := newPainter(t)
	if p.pointer(press(50, 110, mouse.ButtonLeft)) || p.e.Drawing() {
		t.Fatal("press on the status bar must not start a stroke")
	}
}

func TestPainterToolAndSize(t *testing.T) {
	p := newPainter(t)
	p.action(ActionErase)
	p.action(ActionGrow)
	if p.a.Tool != stroke.Erase || p.a.BrushSize != 24 {
		t.Fatalf("tool %v size %v", p.a.Tool, p.a.BrushSize)
	}
	if !p.action(ActionQuit) {
		t.Fatal("quit should close the window")
	}
}

func TestPainterSave(t *testing.T) {
	var written []byte
	p := newPainter(t, WithOutput("mask.png"))
	p.a.writeFile = func(path string, data []byte) error {
		if path != "mask.png" {
			t.Errorf("wrote %q", path)
		}
		written = data
		return nil
	}
	p.action(ActionSave)
	if written != nil || p.st.message != "no mask" {
		t.Fatalf("saving without a mask wrote %d bytes, message %q", len(written), p.st.message)
	}
	p.pointer(press(50, 50, mouse.ButtonLeft))
	p.pointer(release(50, 50))
	p.action(ActionSave)
	if len(written) == 0 || string(written) != string(p.e.Export().PNG) {
		t.Fatal("save should write the current export")
	}
}

func TestPainterCopyError(t *testing.T) {
	p := newPainter(t)
	p.a.copyPNG = func([]byte) error { return errors.New("no display") }
	p.pointer(press(50, 50, mouse.ButtonLeft))
	p.pointer(release(50, 50))
	p.action(ActionCopy)
	if p.st.message != "copy: no display" {
		t.Fatalf("message %q", p.st.message)
	}
}

func TestPainterPasteDecodesOffLoop(t *testing.T) {
	maskPNG, err := raster.EncodePNG(opaque(10, 10, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	p := newPainter(t)
	got := make(chan any, 1)
	p.send = func(ev any) { got <- ev }
	p.a.readMask = func() ([]byte, string, error) { return maskPNG, "", nil }
	p.action(ActionPaste)
	ev, ok := (<-got).(maskDecoded)
	if !ok {
		t.Fatal("paste should post a decoded mask")
	}
	if p.e.Len() != 0 {
		t.Fatal("history must not change before the loop handles the event")
	}
	p.addMask(ev)
	if p.e.Len() != 1 || p.e.Coverage().AlphaAt(99, 99).A != 255 {
		t.Fatal("pasted mask should cover the surface")
	}
}

func TestPasteFailureLeavesHistory(t *testing.T) {
	p := newPainter(t)
	ev := decodeClipboardMask(func() ([]byte, string, error) { return []byte("junk"), "", nil })
	if ev.err == nil {
		t.Fatal("expected decode error")
	}
	p.addMask(ev)
	if p.e.Len() != 0 {
		t.Fatal("failed paste must not touch history")
	}
}

func TestDecodeClipboardDataURL(t *testing.T) {
	data, err := raster.EncodePNG(opaque(4, 4, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	url := raster.EncodeDataURL(data)
	ev := decodeClipboardMask(func() ([]byte, string, error) { return nil, url, nil })
	if ev.err != nil || ev.img.Bounds().Dx() != 4 {
		t.Fatalf("decode data url: %v", ev.err)
	}
}

func TestComposeFrame(t *testing.T) {
	th := theme.Default()
	view := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range view.Pix {
		view.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20+statusHeight))
	composeFrame(context.Background(), dst, paintState{
		width:  20,
		height: 20 + statusHeight,
		theme:  th,
		view:   view,
		dst:    image.Rect(5, 5, 15, 15),
	})
	if c := dst.RGBAAt(10, 10); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("view pixel %v", c)
	}
	bg := th.Background
	if c := dst.RGBAAt(1, 1); c != (color.RGBA{bg.R, bg.G, bg.B, bg.A}) {
		t.Errorf("background pixel %v", c)
	}
	sb := th.StatusBackground
	if c := dst.RGBAAt(19, 20+statusHeight-1); c != (color.RGBA{sb.R, sb.G, sb.B, sb.A}) {
		t.Errorf("status bar pixel %v", c)
	}
}

func TestCheckerboard(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	drawCheckerboard(dst, dst.Bounds(), 8, color.White, color.Black)
	if dst.RGBAAt(0, 0).R != 255 || dst.RGBAAt(8, 0).R != 0 || dst.RGBAAt(8, 8).R != 255 {
		t.Fatal("unexpected checker pattern")
	}
}

func newRefiner(t *testing.T) *refiner {
	t.Helper()
	base := opaque(50, 50, color.NRGBA{200, 0, 0, 255})
	orig := opaque(50, 50, color.NRGBA{0, 0, 200, 255})
	ed, err := refine.New(base, orig, geometry.Size{W: 50, H: 50})
	if err != nil {
		t.Fatal(err)
	}
	a := New(WithEditor(ed), WithBrush(10, stroke.Draw))
	r := &refiner{a: a, ed: ed}
	r.resize(100, 100+statusHeight)
	return r
}

func TestRefinerScalesPointer(t *testing.T) {
	r := newRefiner(t)
	// the 50px surface is shown at 100px, so client (50,50) is surface (25,25)
	r.pointer(press(50, 50, mouse.ButtonLeft))
	r.pointer(release(50, 50))
	if a := r.ed.Image().RGBAAt(25, 25).A; a != 0 {
		t.Fatalf("erase left alpha %d", a)
	}
	if a := r.ed.Image().RGBAAt(2, 2).A; a != 255 {
		t.Fatalf("pixel away from the dab changed to %d", a)
	}
}

func TestRefinerCancelRestores(t *testing.T) {
	r := newRefiner(t)
	r.pointer(press(50, 50, mouse.ButtonLeft))
	r.pointer(release(50, 50))
	if !r.action(ActionCancel) {
		t.Fatal("cancel should close the window")
	}
	if a := r.ed.Image().RGBAAt(25, 25).A; a != 255 {
		t.Fatalf("cancel left alpha %d", a)
	}
}

func TestRefinerApplyWritesOutput(t *testing.T) {
	r := newRefiner(t)
	r.a.Output = "refined.png"
	var written []byte
	r.a.writeFile = func(_ string, data []byte) error {
		written = data
		return nil
	}
	r.action(ActionRestore)
	if r.a.RefineTool != refine.Restore {
		t.Fatal("restore key should select the restore tool")
	}
	if !r.action(ActionApply) || len(written) == 0 {
		t.Fatal("apply should write the result and close the window")
	}
}
