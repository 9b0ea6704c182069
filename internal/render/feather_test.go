package render

import (
	"image"
	"testing"
)

func TestFeatherZeroRadiusCopies(t *testing.T) {
	a := image.NewAlpha(image.Rect(0, 0, 4, 4))
	a.Pix[5] = 200
	out := Feather(a, 0)
	if out == a {
		t.Fatal("expected a copy")
	}
	if out.Pix[5] != 200 {
		t.Fatalf("pixel changed to %d", out.Pix[5])
	}
}

func TestFeatherSoftensEdge(t *testing.T) {
	a := image.NewAlpha(image.Rect(0, 0, 20, 1))
	for x := 0; x < 10; x++ {
		a.Pix[x] = 255
	}
	out := Feather(a, 2)
	if out.Pix[0] != 255 {
		t.Fatalf("interior alpha %d, want 255", out.Pix[0])
	}
	if got := out.Pix[9]; got == 0 || got == 255 {
		t.Fatalf("edge alpha %d, want partial", got)
	}
	if got := out.Pix[10]; got == 0 {
		t.Fatal("expected coverage to bleed past the edge")
	}
	if out.Pix[19] != 0 {
		t.Fatalf("far pixel alpha %d, want 0", out.Pix[19])
	}
}

func TestFeatherKeepsBounds(t *testing.T) {
	a := image.NewAlpha(image.Rect(3, 4, 13, 9))
	out := Feather(a, 3)
	if !out.Bounds().Eq(a.Bounds()) {
		t.Fatalf("bounds %v, want %v", out.Bounds(), a.Bounds())
	}
}

func TestFeatherNil(t *testing.T) {
	if Feather(nil, 4) != nil {
		t.Fatal("expected nil")
	}
}
