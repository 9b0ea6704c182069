package main

import (
	"flag"
	"fmt"

	"github.com/example/maskbrush/internal/appstate"
	"github.com/example/maskbrush/internal/stroke"
)

// paintCmd opens the mask painting window.
type paintCmd struct {
	file   string
	output string
	mask   string
	script string
	size   float64
	tool   string
	*root
	fs *flag.FlagSet
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	size, tool := r.brush()
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.file, "file", "", "image to paint the mask over")
	fs.StringVar(&p.output, "output", "", "file written by Ctrl+S (default IMAGE-mask.png)")
	fs.StringVar(&p.mask, "mask", "", "raster mask to start from")
	fs.StringVar(&p.script, "script", "", "stroke script to replay before the window opens")
	fs.Float64Var(&p.size, "size", size, "brush diameter in pixels")
	fs.StringVar(&p.tool, "tool", tool.String(), "initial tool: draw or erase")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if p.file == "" && fs.NArg() > 0 {
		p.file = fs.Arg(0)
	}
	if p.file == "" {
		return nil, &UsageError{of: p}
	}
	if _, err := stroke.ParseTool(p.tool); err != nil {
		return nil, err
	}
	if p.output == "" {
		p.output = defaultOutput(p.file, r.cfg().SaveDir, "-mask")
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	img, err := loadImage(p.file)
	if err != nil {
		return err
	}
	tool, err := stroke.ParseTool(p.tool)
	if err != nil {
		return err
	}
	e := p.newEngine()
	e.LoadSource(img)
	if p.mask != "" || p.script != "" {
		// Seed the history at native size; the window relayouts it.
		e.Layout(layoutFor(img, 0, 0))
	}
	if p.mask != "" {
		m, err := loadImage(p.mask)
		if err != nil {
			return fmt.Errorf("failed to load mask: %w", err)
		}
		if err := e.AddRasterMask(m); err != nil {
			return fmt.Errorf("failed to add mask: %w", err)
		}
	}
	if p.script != "" {
		if err := replay(e, p.script, p.size, tool); err != nil {
			return err
		}
	}
	st := appstate.New(
		appstate.WithEngine(e),
		appstate.WithOutput(p.output),
		appstate.WithBrush(p.size, tool),
		appstate.WithTheme(p.palette()),
		appstate.WithNotifier(p.notifier),
		appstate.WithTitle("maskbrush - "+p.file),
	)
	st.Run()
	return nil
}
