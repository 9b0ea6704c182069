package mask

import (
	"image"

	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/render"
)

// Export is the masked image for the edit service: the source at surface
// resolution with selected pixels made transparent. The zero Export means
// nothing is selected.
type Export struct {
	// PNG holds the encoded image.
	PNG []byte
	// Image is the decoded form of PNG.
	Image *image.RGBA
}

// Empty reports whether the export signals "no mask".
func (x Export) Empty() bool { return len(x.PNG) == 0 }

// DataURL returns the export as a PNG data URL, or "" when empty.
func (x Export) DataURL() string {
	if x.Empty() {
		return ""
	}
	return raster.EncodeDataURL(x.PNG)
}

// extract removes coverage from a copy of the displayed source. An empty
// history, or a surface that has not been laid out, yields the zero Export.
func (e *Engine) extract() Export {
	if !e.ready() || !e.log.CanUndo() {
		return Export{}
	}
	img := image.NewRGBA(e.display.Rect)
	copy(img.Pix, e.display.Pix)
	cov := e.coverage
	if e.feather > 0 {
		cov = render.Feather(cov, e.feather)
	}
	raster.DestinationOutRGBA(img, cov)
	data, err := raster.EncodePNG(img)
	if err != nil {
		Logger().Warn("export failed", "err", err)
		return Export{}
	}
	return Export{PNG: data, Image: img}
}
