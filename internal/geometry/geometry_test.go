package geometry

import (
	"image"
	"testing"
)

func TestFitLetterboxesWideImage(t *testing.T) {
	got := Fit(800, 600, 1600, 400)
	if got != (Size{W: 800, H: 200}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

func TestFitLetterboxesTallImage(t *testing.T) {
	got := Fit(800, 600, 300, 600)
	if got != (Size{W: 300, H: 600}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

func TestFitUpscalesSmallImage(t *testing.T) {
	got := Fit(400, 400, 100, 50)
	if got != (Size{W: 400, H: 200}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

func TestFitEmptyInputs(t *testing.T) {
	if got := Fit(0, 100, 10, 10); !got.Empty() {
		t.Fatalf("expected empty size for empty container, got %+v", got)
	}
	if got := Fit(100, 100, 0, 10); !got.Empty() {
		t.Fatalf("expected empty size for empty image, got %+v", got)
	}
	if got := FitImage(100, 100, nil); !got.Empty() {
		t.Fatalf("expected empty size for nil image, got %+v", got)
	}
}

func TestFitNeverCollapsesToZero(t *testing.T) {
	got := Fit(1000, 1, 1, 1000)
	if got.W < 1 || got.H < 1 {
		t.Fatalf("expected at least one pixel per axis, got %+v", got)
	}
}

func TestFitImageUsesBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 110, 60))
	got := FitImage(50, 50, img)
	if got != (Size{W: 50, H: 25}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

func TestViewportToSurfaceScalesDisplayedSize(t *testing.T) {
	v := Viewport{OriginX: 20, OriginY: 10, DisplayW: 100, DisplayH: 50, Surface: Size{W: 200, H: 100}}
	x, y := v.ToSurface(70, 35)
	if x != 100 || y != 50 {
		t.Fatalf("got (%v,%v), want (100,50)", x, y)
	}
}

func TestViewportToSurfaceIdentityWithoutDisplay(t *testing.T) {
	v := Viewport{OriginX: 5, OriginY: 5, Surface: Size{W: 10, H: 10}}
	x, y := v.ToSurface(8, 9)
	if x != 3 || y != 4 {
		t.Fatalf("got (%v,%v), want (3,4)", x, y)
	}
}

func TestViewportContains(t *testing.T) {
	v := Viewport{OriginX: 10, OriginY: 10, Surface: Size{W: 20, H: 20}}
	if !v.Contains(10, 10) || !v.Contains(29, 29) {
		t.Fatal("expected corners inside")
	}
	if v.Contains(30, 15) || v.Contains(9, 15) {
		t.Fatal("expected points outside")
	}
}

func TestScale(t *testing.T) {
	sx, sy := Scale(Size{W: 100, H: 50}, Size{W: 200, H: 25})
	if sx != 2 || sy != 0.5 {
		t.Fatalf("got (%v,%v)", sx, sy)
	}
	sx, sy = Scale(Size{}, Size{W: 200, H: 25})
	if sx != 1 || sy != 1 {
		t.Fatalf("expected identity, got (%v,%v)", sx, sy)
	}
}
