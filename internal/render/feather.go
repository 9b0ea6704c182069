// Package render holds soft-edge filters applied to coverage before export.
package render

import "image"

// Feather returns a copy of a with its edges softened by a separable box
// blur of the given radius. A non-positive radius returns an unblurred copy.
func Feather(a *image.Alpha, radius int) *image.Alpha {
	if a == nil {
		return nil
	}
	out := image.NewAlpha(a.Rect)
	bounds := a.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if radius <= 0 || w == 0 || h == 0 {
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], a.Pix[y*a.Stride:y*a.Stride+w])
		}
		return out
	}
	tmp := image.NewAlpha(a.Rect)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := a.Pix[y*a.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		dst := tmp.Pix[y*tmp.Stride:]
		for x := 0; x < w; x++ {
			x0, x1 := window(x, radius, w)
			dst[x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := window(y, radius, h)
			out.Pix[y*out.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return out
}

// window clamps [i-radius, i+radius] to [0, n).
func window(i, radius, n int) (int, int) {
	lo, hi := i-radius, i+radius
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	return lo, hi
}
