package main

import (
	"flag"
	"fmt"

	"github.com/example/maskbrush/internal/appstate"
	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/refine"
	"github.com/example/maskbrush/internal/stroke"
)

// refineCmd opens the refinement window on a generated result.
type refineCmd struct {
	file     string
	original string
	output   string
	size     float64
	spacing  float64
	tool     string
	*root
	fs *flag.FlagSet
}

func (c *refineCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRefineCmd(args []string, r *root) (*refineCmd, error) {
	fs := flag.NewFlagSet("refine", flag.ExitOnError)
	cfg := r.cfg()
	c := &refineCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "generated result to refine")
	fs.StringVar(&c.original, "original", "", "image the restore brush paints from")
	fs.StringVar(&c.output, "output", "", "file written on apply (default RESULT-refined.png)")
	fs.Float64Var(&c.size, "size", cfg.Refine.BrushSize, "brush diameter in pixels")
	fs.Float64Var(&c.spacing, "spacing", cfg.Refine.Spacing, "distance between dabs, 0 for a quarter of the brush")
	fs.StringVar(&c.tool, "tool", refine.Erase.String(), "initial tool: erase or restore")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" || c.original == "" {
		return nil, &UsageError{of: c}
	}
	if _, err := refine.ParseTool(c.tool); err != nil {
		return nil, err
	}
	if c.output == "" {
		c.output = defaultOutput(c.file, cfg.SaveDir, "-refined")
	}
	return c, nil
}

// editor builds the refinement editor at the original's resolution.
func (c *refineCmd) editor() (*refine.Editor, error) {
	base, err := loadImage(c.file)
	if err != nil {
		return nil, err
	}
	orig, err := loadImage(c.original)
	if err != nil {
		return nil, err
	}
	b := orig.Bounds()
	ed, err := refine.New(base, orig, geometry.Size{W: b.Dx(), H: b.Dy()}, refine.WithSpacing(c.spacing))
	if err != nil {
		return nil, fmt.Errorf("failed to start refinement: %w", err)
	}
	return ed, nil
}

func (c *refineCmd) Run() error {
	tool, err := refine.ParseTool(c.tool)
	if err != nil {
		return err
	}
	ed, err := c.editor()
	if err != nil {
		return err
	}
	st := appstate.New(
		appstate.WithEditor(ed),
		appstate.WithOutput(c.output),
		appstate.WithBrush(c.size, stroke.Draw),
		appstate.WithRefineTool(tool),
		appstate.WithTheme(c.palette()),
		appstate.WithNotifier(c.notifier),
		appstate.WithTitle("maskbrush refine - "+c.file),
	)
	st.Run()
	return nil
}
