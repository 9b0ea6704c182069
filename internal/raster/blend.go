// Package raster holds the pixel-level pieces of mask authoring: brush
// coverage, Porter-Duff compositing on coverage and premultiplied RGBA
// buffers, scaling and image codecs.
//
// Coverage values are 8-bit alpha. Compositing uses integer arithmetic so
// that replaying the same operations always yields identical buffers.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// mul255 returns a*b/255 rounded to nearest.
func mul255(a, b uint32) uint32 {
	t := a*b + 128
	return (t + t>>8) >> 8
}

// SourceOver adds src coverage to dst: d = s + d*(1-s). strength scales the
// source first and is clamped to [0, 1]. Only the overlap of the two
// buffers is touched.
func SourceOver(dst, src *image.Alpha, strength float64) {
	if dst == nil || src == nil {
		return
	}
	k := strengthByte(strength)
	if k == 0 {
		return
	}
	r := dst.Rect.Intersect(src.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			s := mul255(uint32(src.Pix[si+x]), k)
			if s == 0 {
				continue
			}
			d := uint32(dst.Pix[di+x])
			dst.Pix[di+x] = uint8(s + mul255(d, 255-s))
		}
	}
}

// DestinationOut removes src coverage from dst: d = d*(1-s).
func DestinationOut(dst, src *image.Alpha) {
	if dst == nil || src == nil {
		return
	}
	r := dst.Rect.Intersect(src.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			s := uint32(src.Pix[si+x])
			if s == 0 {
				continue
			}
			dst.Pix[di+x] = uint8(mul255(uint32(dst.Pix[di+x]), 255-s))
		}
	}
}

// DestinationOutRGBA subtracts mask coverage from a premultiplied RGBA
// buffer. Every channel is scaled by 1-m so the result stays premultiplied.
func DestinationOutRGBA(dst *image.RGBA, mask *image.Alpha) {
	if dst == nil || mask == nil {
		return
	}
	r := dst.Rect.Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		mi := mask.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			m := uint32(mask.Pix[mi+x])
			if m == 0 {
				continue
			}
			keep := 255 - m
			p := dst.Pix[di+4*x : di+4*x+4 : di+4*x+4]
			p[0] = uint8(mul255(uint32(p[0]), keep))
			p[1] = uint8(mul255(uint32(p[1]), keep))
			p[2] = uint8(mul255(uint32(p[2]), keep))
			p[3] = uint8(mul255(uint32(p[3]), keep))
		}
	}
}

// AlphaOf extracts the alpha channel of img over bounds.
func AlphaOf(img image.Image, bounds image.Rectangle) *image.Alpha {
	out := image.NewAlpha(bounds)
	if rgba, ok := img.(*image.RGBA); ok {
		r := bounds.Intersect(rgba.Rect)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			si := rgba.PixOffset(r.Min.X, y)
			di := out.PixOffset(r.Min.X, y)
			for x := 0; x < r.Dx(); x++ {
				out.Pix[di+x] = rgba.Pix[si+4*x+3]
			}
		}
		return out
	}
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

// Tint renders coverage as col, with the colour's own alpha scaled by the
// coverage. The result is premultiplied and suitable for draw.Over.
func Tint(cov *image.Alpha, col color.NRGBA) *image.RGBA {
	out := image.NewRGBA(cov.Rect)
	if col.A == 0 {
		return out
	}
	for y := cov.Rect.Min.Y; y < cov.Rect.Max.Y; y++ {
		ci := cov.PixOffset(cov.Rect.Min.X, y)
		oi := out.PixOffset(cov.Rect.Min.X, y)
		for x := 0; x < cov.Rect.Dx(); x++ {
			c := uint32(cov.Pix[ci+x])
			if c == 0 {
				continue
			}
			a := mul255(c, uint32(col.A))
			p := out.Pix[oi+4*x : oi+4*x+4 : oi+4*x+4]
			p[0] = uint8(mul255(uint32(col.R), a))
			p[1] = uint8(mul255(uint32(col.G), a))
			p[2] = uint8(mul255(uint32(col.B), a))
			p[3] = uint8(a)
		}
	}
	return out
}

// Clear zeroes the buffer.
func Clear(a *image.Alpha) {
	if a == nil {
		return
	}
	clear(a.Pix)
}

// Equal reports whether two coverage buffers have identical bounds and pixels.
func Equal(a, b *image.Alpha) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.Rect.Eq(b.Rect) {
		return false
	}
	for y := a.Rect.Min.Y; y < a.Rect.Max.Y; y++ {
		ai := a.PixOffset(a.Rect.Min.X, y)
		bi := b.PixOffset(b.Rect.Min.X, y)
		for x := 0; x < a.Rect.Dx(); x++ {
			if a.Pix[ai+x] != b.Pix[bi+x] {
				return false
			}
		}
	}
	return true
}

// Empty reports whether no pixel carries coverage.
func Empty(a *image.Alpha) bool {
	if a == nil {
		return true
	}
	for _, v := range a.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

func strengthByte(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(v*255 + 0.5)
}
