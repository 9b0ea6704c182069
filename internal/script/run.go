package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/stroke"
)

// DefaultBrushSize is used until a script sets one.
const DefaultBrushSize = 40

// Runner replays scripts. Its brush size and tool carry across commands.
type Runner struct {
	// Dir resolves relative mask paths.
	Dir string
	// ReadFile loads mask files; os.ReadFile when nil.
	ReadFile func(string) ([]byte, error)

	Size float64
	Tool stroke.Tool
}

// NewRunner returns a Runner with the default brush.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir, Size: DefaultBrushSize, Tool: stroke.Draw}
}

// Run applies every command in order. It stops at the first command that
// fails; commands before it stay applied.
func (r *Runner) Run(e *mask.Engine, s *Script) error {
	for _, cmd := range s.Commands {
		if err := r.exec(e, cmd); err != nil {
			return &LineError{Line: cmd.Line, Err: err}
		}
	}
	// An unterminated gesture is committed as if released.
	e.PointerUp()
	return nil
}

func (r *Runner) exec(e *mask.Engine, cmd Command) error {
	switch cmd.Op {
	case OpSize:
		r.Size = cmd.Value
	case OpTool:
		r.Tool = cmd.Tool
	case OpStroke:
		p := cmd.Points[0]
		e.PointerDown(p.X, p.Y, r.Tool, r.Size)
		for _, p := range cmd.Points[1:] {
			e.PointerMove(p.X, p.Y)
		}
		e.PointerUp()
	case OpDown:
		e.PointerDown(cmd.Points[0].X, cmd.Points[0].Y, r.Tool, r.Size)
	case OpMove:
		e.PointerMove(cmd.Points[0].X, cmd.Points[0].Y)
	case OpUp:
		e.PointerUp()
	case OpLeave:
		e.PointerLeave()
	case OpUndo:
		e.Undo()
	case OpRedo:
		e.Redo()
	case OpClear:
		e.Clear()
	case OpLayout:
		e.Layout(cmd.W, cmd.H)
	case OpMask:
		data, err := r.read(cmd.Path)
		if err != nil {
			return err
		}
		return e.AddRasterMaskBytes(data)
	default:
		return fmt.Errorf("unknown command %q", cmd.Op)
	}
	return nil
}

func (r *Runner) read(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && r.Dir != "" {
		path = filepath.Join(r.Dir, path)
	}
	read := r.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("read mask: %w", err)
	}
	return data, nil
}

// RunFile parses and runs the script at path. Relative mask paths resolve
// against the script's directory unless Dir is already set.
func (r *Runner) RunFile(e *mask.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if r.Dir == "" {
		r.Dir = filepath.Dir(path)
	}
	if err := r.Run(e, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
