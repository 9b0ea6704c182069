package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse reads a theme definition, one "Key: colour" pair per line. Missing
// keys keep the default theme's values.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := t.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns a theme field by case-insensitive key. Unknown keys are
// ignored.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "name") {
		t.Name = value
		return nil
	}
	var dst *color.NRGBA
	switch strings.ToLower(key) {
	case "background":
		dst = &t.Background
	case "foreground":
		dst = &t.Foreground
	case "statusbackground", "status_background":
		dst = &t.StatusBackground
	case "checkerlight", "checker_light":
		dst = &t.CheckerLight
	case "checkerdark", "checker_dark":
		dst = &t.CheckerDark
	default:
		return nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	*dst = c
	return nil
}

// Fields returns the theme as ordered key/value pairs in the format Parse
// accepts.
func (t *Theme) Fields() [][2]string {
	return [][2]string{
		{"Name", t.Name},
		{"Background", ToHex(t.Background)},
		{"Foreground", ToHex(t.Foreground)},
		{"StatusBackground", ToHex(t.StatusBackground)},
		{"CheckerLight", ToHex(t.CheckerLight)},
		{"CheckerDark", ToHex(t.CheckerDark)},
	}
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name such as
// "hotpink".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid hex length")
}

// ToHex formats c as #RRGGBB, or #RRGGBBAA when translucent.
func ToHex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
