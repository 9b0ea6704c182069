package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when data carries a non-image media type.
var ErrNotImage = errors.New("not an image")

// Decode decodes PNG, JPEG, GIF, WebP, TIFF or BMP data. It returns the
// format name reported by the image package.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("decode image: empty data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// DecodeDataURL decodes an image carried in a data URL such as
// "data:image/png;base64,...".
func DecodeDataURL(s string) (image.Image, error) {
	du, err := dataurl.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse data url: %w", err)
	}
	if du.MediaType.Type != "image" {
		return nil, fmt.Errorf("data url %s: %w", du.ContentType(), ErrNotImage)
	}
	img, _, err := Decode(du.Data)
	return img, err
}

// EncodePNG encodes img losslessly with its alpha channel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL wraps PNG bytes in a base64 data URL.
func EncodeDataURL(pngData []byte) string {
	return dataurl.New(pngData, "image/png").String()
}
