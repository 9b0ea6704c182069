// Package theme holds the window palette used by the desktop host.
package theme

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Theme defines the colours of the desktop window around the surface.
type Theme struct {
	Name string

	Background       color.NRGBA // letterbox area around the surface
	Foreground       color.NRGBA // status bar text
	StatusBackground color.NRGBA

	// Checkerboard shown through transparent pixels.
	CheckerLight color.NRGBA
	CheckerDark  color.NRGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "default",
		Background:       color.NRGBA{220, 220, 220, 255},
		Foreground:       color.NRGBA{0, 0, 0, 255},
		StatusBackground: color.NRGBA{200, 200, 200, 255},
		CheckerLight:     color.NRGBA{220, 220, 220, 255},
		CheckerDark:      color.NRGBA{192, 192, 192, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:             "dark",
		Background:       color.NRGBA{32, 32, 36, 255},
		Foreground:       color.NRGBA{230, 230, 230, 255},
		StatusBackground: color.NRGBA{48, 48, 54, 255},
		CheckerLight:     color.NRGBA{80, 80, 84, 255},
		CheckerDark:      color.NRGBA{60, 60, 64, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load resolves a theme by built-in name or file path. Themes defined in
// the configuration file take precedence and are passed in defined.
func Load(name string, defined map[string]*Theme) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default(), nil
	}
	if t, ok := defined[name]; ok {
		return t, nil
	}
	if fn, ok := builtin[strings.ToLower(name)]; ok {
		return fn(), nil
	}
	path := name
	if !strings.ContainsRune(name, filepath.Separator) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".config", "maskbrush", "themes", name+".theme")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	defer f.Close()
	return Parse(f)
}
