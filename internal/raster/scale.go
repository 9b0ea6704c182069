package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleToFill returns src stretched to cover bounds with bilinear filtering.
// The result is premultiplied RGBA.
func ScaleToFill(src image.Image, bounds image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(bounds)
	if src == nil || src.Bounds().Empty() || bounds.Empty() {
		return dst
	}
	if src.Bounds().Size() == bounds.Size() {
		draw.Draw(dst, bounds, src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, bounds, src, src.Bounds(), draw.Src, nil)
	return dst
}

// CoverageOf returns the alpha of src scaled to fill bounds.
func CoverageOf(src image.Image, bounds image.Rectangle) *image.Alpha {
	return AlphaOf(ScaleToFill(src, bounds), bounds)
}
