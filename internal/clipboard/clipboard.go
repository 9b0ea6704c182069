// Package clipboard moves exports and raster masks through the system
// clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

// WritePNG publishes already encoded PNG data.
func WritePNG(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("clipboard: nothing to copy")
	}
	return writePNG(data)
}

// ReadPNG returns the PNG data on the clipboard.
func ReadPNG() ([]byte, error) {
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	return data, nil
}

// ReadImage decodes the PNG image on the clipboard.
func ReadImage() (image.Image, error) {
	data, err := ReadPNG()
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error { return writeText([]byte(text)) }

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	data, err := readText()
	if err != nil {
		return "", err
	}
	// Some applications append a null byte to STRING responses.
	text := strings.TrimRight(string(data), "\x00")
	if text == "" {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	return text, nil
}

// ReadMask returns mask bytes from the clipboard: PNG image data when
// present, otherwise the payload of a data URL copied as text.
func ReadMask() (data []byte, dataURL string, err error) {
	if data, err := ReadPNG(); err == nil {
		return data, "", nil
	}
	text, err := ReadText()
	if err != nil {
		return nil, "", err
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "data:") {
		return nil, "", fmt.Errorf("clipboard holds neither an image nor a data url")
	}
	return nil, text, nil
}
