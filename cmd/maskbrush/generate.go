package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/example/maskbrush/internal/session"
)

// generateCmd sends a scripted mask through an external edit command.
type generateCmd struct {
	apply     *applyCmd
	prompt    string
	exec      string
	variants  int
	outputDir string
	*root
	fs *flag.FlagSet
}

func (g *generateCmd) FlagSet() *flag.FlagSet {
	return g.fs
}

func parseGenerateCmd(args []string, r *root) (*generateCmd, error) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg := r.cfg()
	size, tool := r.brush()
	g := &generateCmd{root: r, fs: fs, apply: &applyCmd{root: r}}
	fs.Usage = usageFunc(g)
	fs.StringVar(&g.apply.file, "file", "", "source image")
	fs.StringVar(&g.apply.script, "script", "", "stroke script to replay")
	fs.IntVar(&g.apply.width, "width", 0, "container width the script coordinates refer to")
	fs.IntVar(&g.apply.height, "height", 0, "container height the script coordinates refer to")
	fs.Float64Var(&g.apply.size, "size", size, "brush diameter until the script sets one")
	fs.StringVar(&g.apply.tool, "tool", tool.String(), "tool until the script sets one")
	fs.IntVar(&g.apply.feather, "feather", 0, "soften the mask edge by this many pixels")
	fs.StringVar(&g.prompt, "prompt", "", "instruction for the edit")
	fs.StringVar(&g.exec, "exec", cfg.Generate.Command, "edit command: reads the masked PNG on stdin, writes the result to stdout")
	fs.IntVar(&g.variants, "variants", cfg.Generate.Variants, "number of results to request")
	fs.StringVar(&g.outputDir, "output-dir", cfg.SaveDir, "directory for the results (default alongside IMAGE)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if g.apply.file == "" || g.apply.script == "" || g.prompt == "" {
		return nil, &UsageError{of: g}
	}
	if g.exec == "" {
		return nil, fmt.Errorf("an edit command is required: pass -exec or set generate.command")
	}
	if (g.apply.width > 0) != (g.apply.height > 0) {
		return nil, fmt.Errorf("-width and -height must be given together")
	}
	return g, nil
}

func (g *generateCmd) Run() error {
	service, err := session.ParseExec(g.exec)
	if err != nil {
		return err
	}
	e, err := g.apply.engine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	s := session.New(e, service,
		session.WithVariants(g.variants),
		session.WithProgress(func(p float64) { fmt.Fprintf(os.Stderr, "generating: %.0f%%\n", p) }),
	)
	gen, err := s.Generate(ctx, g.prompt)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	dir := g.outputDir
	if dir == "" {
		dir = filepath.Dir(g.apply.file)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, data := range gen.Results {
		path := filepath.Join(dir, fmt.Sprintf("%s-%d.png", gen.ID, i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write variant %d: %w", i+1, err)
		}
		fmt.Fprintln(stdout, path)
		g.notifyExport(path)
	}
	return nil
}
