package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/example/maskbrush/internal/config"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/notify"
	"github.com/example/maskbrush/internal/stroke"
	"github.com/example/maskbrush/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	refineAlerts bool
	verbose      bool
	themeName    string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("maskbrush", flag.ExitOnError),
		program:  "maskbrush",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after saving a mask")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.refineAlerts, "notify-refine", cfg.Notify.Refine, "show a desktop notification after applying a refinement")
	r.fs.BoolVar(&r.verbose, "v", false, "log engine activity to stderr")
	// Precedence: CLI > Env > Config > Default. The environment is folded
	// into the config by the loader.
	r.fs.StringVar(&r.themeName, "theme", "", "window theme ("+strings.Join(theme.Names(), ", ")+" or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventRefine, r.refineAlerts)
	}
	if r.verbose {
		mask.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	themeName := r.themeName
	if themeName == "" {
		themeName = r.cfg().Theme
	}
	t, err := theme.Load(themeName, r.cfg().Themes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		t = theme.Default()
	}
	r.activeTheme = t

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "paint":
		cmd, err = parsePaintCmd(subArgs, r)
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "generate":
		cmd, err = parseGenerateCmd(subArgs, r)
	case "refine":
		cmd, err = parseRefineCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cfg returns the loaded configuration, or the defaults when the root was
// built without one.
func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) newEngine(opts ...mask.Option) *mask.Engine {
	sel := r.cfg().Selection
	opts = append([]mask.Option{mask.WithSelectionColor(sel.Color), mask.WithCoverage(sel.Coverage)}, opts...)
	return mask.New(opts...)
}

// brush resolves the configured tool and brush size for a subcommand flag
// default.
func (r *root) brush() (float64, stroke.Tool) {
	cfg := r.cfg()
	tool, err := stroke.ParseTool(cfg.Tool)
	if err != nil {
		tool = stroke.Draw
	}
	return cfg.BrushSize, tool
}

func (r *root) palette() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyRefine(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Refine(detail, img)
}
