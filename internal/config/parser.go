package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/maskbrush/internal/stroke"
	"github.com/example/maskbrush/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "selection":
			err = setSelectionField(&cfg.Selection, key, value)
		case currentSection == "refine":
			err = setRefineField(&cfg.Refine, key, value)
		case currentSection == "generate":
			err = setGenerateField(&cfg.Generate, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

// Set assigns a dotted key such as "brush_size" or "selection.color". It is
// used for environment overrides.
func (c *Config) Set(key, value string) error {
	section, field, ok := strings.Cut(strings.ToLower(key), ".")
	if !ok {
		return setRootField(c, key, value)
	}
	switch section {
	case "selection":
		return setSelectionField(&c.Selection, field, value)
	case "refine":
		return setRefineField(&c.Refine, field, value)
	case "generate":
		return setGenerateField(&c.Generate, field, value)
	case "notify":
		return setNotifyField(&c.Notify, field, value)
	}
	return fmt.Errorf("unknown section %q", section)
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "brush_size":
		v, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.BrushSize = v
	case "tool":
		if _, err := stroke.ParseTool(value); err != nil {
			return err
		}
		cfg.Tool = strings.ToLower(value)
	}
	return nil
}

func setSelectionField(s *Selection, key, value string) error {
	switch strings.ToLower(key) {
	case "color", "colour":
		c, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		s.Color = c
	case "coverage":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("coverage must be between 0 and 1, got %q", value)
		}
		s.Coverage = v
	}
	return nil
}

func setRefineField(r *Refine, key, value string) error {
	switch strings.ToLower(key) {
	case "brush_size":
		v, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		r.BrushSize = v
	case "spacing":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid spacing %q", value)
		}
		r.Spacing = v
	}
	return nil
}

func setGenerateField(g *Generate, key, value string) error {
	switch strings.ToLower(key) {
	case "command":
		g.Command = value
	case "variants":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid variants %q", value)
		}
		g.Variants = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	case "refine":
		n.Refine = b
	}
	return nil
}

func parsePositive(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return v, nil
}
