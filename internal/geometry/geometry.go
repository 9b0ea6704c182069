// Package geometry sizes the drawing surface against its container and maps
// pointer positions into surface pixels.
package geometry

import (
	"image"
	"math"
)

// Size is a drawing surface size in whole pixels. The zero Size means the
// surface has not been laid out yet.
type Size struct {
	W, H int
}

// Empty reports whether the surface has no drawable area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Rect returns the surface bounds anchored at the origin.
func (s Size) Rect() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// Fit returns the largest surface with the image's aspect ratio that fits
// inside the container. The image is letterboxed, never cropped.
func Fit(containerW, containerH, imageW, imageH float64) Size {
	if containerW <= 0 || containerH <= 0 || imageW <= 0 || imageH <= 0 {
		return Size{}
	}
	imgAspect := imageW / imageH
	containerAspect := containerW / containerH
	var w, h float64
	if imgAspect > containerAspect {
		w = containerW
		h = w / imgAspect
	} else {
		h = containerH
		w = h * imgAspect
	}
	return Size{W: atLeastOne(w), H: atLeastOne(h)}
}

// FitImage is Fit for an image's bounds.
func FitImage(containerW, containerH float64, img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Fit(containerW, containerH, float64(b.Dx()), float64(b.Dy()))
}

func atLeastOne(v float64) int {
	n := int(math.Floor(v))
	if n < 1 {
		return 1
	}
	return n
}

// Viewport describes where a surface is laid out on screen. Origin is the
// client position of the surface's top-left corner and Display the size it
// occupies there, which differs from Surface when the host scales the
// surface for pixel density or layout.
type Viewport struct {
	OriginX, OriginY float64
	DisplayW         float64
	DisplayH         float64
	Surface          Size
}

// ToSurface maps a client position to surface pixels.
func (v Viewport) ToSurface(clientX, clientY float64) (x, y float64) {
	x = clientX - v.OriginX
	y = clientY - v.OriginY
	if v.DisplayW > 0 {
		x *= float64(v.Surface.W) / v.DisplayW
	}
	if v.DisplayH > 0 {
		y *= float64(v.Surface.H) / v.DisplayH
	}
	return x, y
}

// Contains reports whether a client position falls on the surface.
func (v Viewport) Contains(clientX, clientY float64) bool {
	w, h := v.DisplayW, v.DisplayH
	if w <= 0 {
		w = float64(v.Surface.W)
	}
	if h <= 0 {
		h = float64(v.Surface.H)
	}
	return clientX >= v.OriginX && clientY >= v.OriginY &&
		clientX < v.OriginX+w && clientY < v.OriginY+h
}

// Scale returns the per-axis factor that maps coordinates recorded on from
// onto to. A zero size on either side yields the identity.
func Scale(from, to Size) (sx, sy float64) {
	if from.Empty() || to.Empty() {
		return 1, 1
	}
	return float64(to.W) / float64(from.W), float64(to.H) / float64(from.H)
}
