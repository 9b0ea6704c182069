package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/maskbrush/internal/clipboard"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/stroke"
)

var errNoMask = errors.New("no mask")

var (
	copyToClipboardFn           = clipboard.WritePNG
	stdout            io.Writer = os.Stdout
)

// applyCmd replays a stroke script without a window.
type applyCmd struct {
	file        string
	script      string
	output      string
	width       int
	height      int
	size        float64
	tool        string
	feather     int
	toClipboard bool
	dataURL     bool
	*root
	fs *flag.FlagSet
}

func (a *applyCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	size, tool := r.brush()
	a := &applyCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.file, "file", "", "source image")
	fs.StringVar(&a.script, "script", "", "stroke script to replay")
	fs.StringVar(&a.output, "output", "", "masked PNG to write (default IMAGE-masked.png)")
	fs.IntVar(&a.width, "width", 0, "container width the script coordinates refer to")
	fs.IntVar(&a.height, "height", 0, "container height the script coordinates refer to")
	fs.Float64Var(&a.size, "size", size, "brush diameter until the script sets one")
	fs.StringVar(&a.tool, "tool", tool.String(), "tool until the script sets one")
	fs.IntVar(&a.feather, "feather", 0, "soften the mask edge by this many pixels")
	fs.BoolVar(&a.toClipboard, "to-clipboard", false, "copy the masked PNG to the clipboard instead of writing a file")
	fs.BoolVar(&a.dataURL, "data-url", false, "print the masked PNG as a data URL instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.file == "" || a.script == "" {
		return nil, &UsageError{of: a}
	}
	if a.feather < 0 {
		return nil, fmt.Errorf("-feather must not be negative")
	}
	if (a.width > 0) != (a.height > 0) {
		return nil, fmt.Errorf("-width and -height must be given together")
	}
	if a.toClipboard && a.dataURL {
		return nil, fmt.Errorf("-to-clipboard cannot be combined with -data-url")
	}
	if _, err := stroke.ParseTool(a.tool); err != nil {
		return nil, err
	}
	if a.output == "" {
		a.output = defaultOutput(a.file, r.cfg().SaveDir, "-masked")
	}
	return a, nil
}

// engine loads the source and replays the script over it.
func (a *applyCmd) engine() (*mask.Engine, error) {
	img, err := loadImage(a.file)
	if err != nil {
		return nil, err
	}
	tool, err := stroke.ParseTool(a.tool)
	if err != nil {
		return nil, err
	}
	e := a.newEngine(mask.WithFeather(a.feather))
	e.LoadSource(img)
	e.Layout(layoutFor(img, a.width, a.height))
	if err := replay(e, a.script, a.size, tool); err != nil {
		return nil, err
	}
	return e, nil
}

// export builds the masked image the script describes.
func (a *applyCmd) export() (mask.Export, error) {
	e, err := a.engine()
	if err != nil {
		return mask.Export{}, err
	}
	x := e.Export()
	if x.Empty() {
		return mask.Export{}, errNoMask
	}
	return x, nil
}

func (a *applyCmd) Run() error {
	x, err := a.export()
	if err != nil {
		return err
	}
	switch {
	case a.toClipboard:
		if err := copyToClipboardFn(x.PNG); err != nil {
			return fmt.Errorf("failed to copy mask: %w", err)
		}
		a.notifyCopy("masked image")
	case a.dataURL:
		if _, err := fmt.Fprintln(stdout, x.DataURL()); err != nil {
			return err
		}
	default:
		if err := os.WriteFile(a.output, x.PNG, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.output, err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", a.output)
		a.notifyExport(a.output)
	}
	return nil
}
