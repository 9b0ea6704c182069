package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/script"
	"github.com/example/maskbrush/internal/stroke"
)

var stdin io.Reader = os.Stdin

// loadImage decodes the image at path; "-" reads standard input.
func loadImage(path string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	img, _, err := raster.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// replay runs the stroke script at path against e with the given starting
// brush.
func replay(e *mask.Engine, path string, size float64, tool stroke.Tool) error {
	runner := script.NewRunner("")
	if size > 0 {
		runner.Size = size
	}
	runner.Tool = tool
	return runner.RunFile(e, path)
}

// layoutFor sizes the container: the source's own size unless both
// dimensions are given.
func layoutFor(img image.Image, w, h int) (float64, float64) {
	if w > 0 && h > 0 {
		return float64(w), float64(h)
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// defaultOutput names the mask written next to src, or in dir when set.
func defaultOutput(src, dir, suffix string) string {
	base := filepath.Base(src)
	if src == "" || src == "-" {
		base = "image"
	}
	name := strings.TrimSuffix(base, filepath.Ext(base)) + suffix + ".png"
	if dir != "" {
		return filepath.Join(dir, name)
	}
	if src == "" || src == "-" {
		return name
	}
	return filepath.Join(filepath.Dir(src), name)
}
