package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/maskbrush/internal/theme"
)

// Defaults used when neither flags, environment nor the config file set a
// value.
const (
	DefaultBrushSize       = 40
	DefaultRefineBrushSize = 40
	DefaultTool            = "draw"
	DefaultVariants        = 4
)

// DefaultSelectionColor is the translucent pink the selection is shown in.
var DefaultSelectionColor = color.NRGBA{R: 236, G: 72, B: 153, A: 128}

// Selection holds how the mask is shown and how strongly strokes cover.
type Selection struct {
	Color    color.NRGBA
	Coverage float64
}

// Refine holds refinement brush settings.
type Refine struct {
	BrushSize float64
	// Spacing between dabs; zero means a quarter of the brush size.
	Spacing float64
}

// Generate holds edit service settings.
type Generate struct {
	// Command is the external program run for each variant.
	Command  string
	Variants int
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
	Refine bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	SaveDir   string
	BrushSize float64
	Tool      string
	Selection Selection
	Refine    Refine
	Generate  Generate
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		BrushSize: DefaultBrushSize,
		Tool:      DefaultTool,
		Selection: Selection{Color: DefaultSelectionColor, Coverage: 1},
		Refine:    Refine{BrushSize: DefaultRefineBrushSize},
		Generate:  Generate{Variants: DefaultVariants},
		Themes:    make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "brush_size = %s\n", formatFloat(c.BrushSize))
	fmt.Fprintf(&sb, "tool = %s\n", c.Tool)
	sb.WriteString("\n")

	sb.WriteString("[selection]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.ToHex(c.Selection.Color))
	fmt.Fprintf(&sb, "coverage = %s\n", formatFloat(c.Selection.Coverage))
	sb.WriteString("\n")

	sb.WriteString("[refine]\n")
	fmt.Fprintf(&sb, "brush_size = %s\n", formatFloat(c.Refine.BrushSize))
	fmt.Fprintf(&sb, "spacing = %s\n", formatFloat(c.Refine.Spacing))
	sb.WriteString("\n")

	sb.WriteString("[generate]\n")
	if c.Generate.Command != "" {
		fmt.Fprintf(&sb, "command = %s\n", c.Generate.Command)
	}
	fmt.Fprintf(&sb, "variants = %d\n", c.Generate.Variants)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "refine = %v\n", c.Notify.Refine)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		for _, kv := range c.Themes[name].Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
