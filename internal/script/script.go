// Package script replays stroke scripts against a mask engine. A script is
// a line-oriented list of pointer gestures and history operations:
//
//	size 40
//	tool draw
//	stroke 10,10 50,10
//	mask selection.png
//	undo
//
// Blank lines and anything after '#' are ignored.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/maskbrush/internal/stroke"
)

// Op names a script command.
type Op string

const (
	OpSize   Op = "size"
	OpTool   Op = "tool"
	OpStroke Op = "stroke"
	OpDown   Op = "down"
	OpMove   Op = "move"
	OpUp     Op = "up"
	OpLeave  Op = "leave"
	OpMask   Op = "mask"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
	OpLayout Op = "layout"
)

// Command is one parsed line.
type Command struct {
	Line   int
	Op     Op
	Points []stroke.Point
	Value  float64
	Tool   stroke.Tool
	Path   string
	W, H   float64
}

// Script is a parsed stroke script.
type Script struct {
	Commands []Command
}

// LineError ties a parse or replay failure to its script line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Parse reads a script.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, &LineError{Line: n, Err: err}
		}
		cmd.Line = n
		s.Commands = append(s.Commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return s, nil
}

func parseCommand(fields []string) (Command, error) {
	op := Op(strings.ToLower(fields[0]))
	args := fields[1:]
	cmd := Command{Op: op}
	switch op {
	case OpSize:
		if len(args) != 1 {
			return cmd, fmt.Errorf("size takes one value")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || v <= 0 {
			return cmd, fmt.Errorf("invalid size %q", args[0])
		}
		cmd.Value = v
	case OpTool:
		if len(args) != 1 {
			return cmd, fmt.Errorf("tool takes one name")
		}
		t, err := stroke.ParseTool(args[0])
		if err != nil {
			return cmd, err
		}
		cmd.Tool = t
	case OpStroke:
		if len(args) == 0 {
			return cmd, fmt.Errorf("stroke needs at least one point")
		}
		for _, a := range args {
			p, err := parsePair(a)
			if err != nil {
				return cmd, err
			}
			cmd.Points = append(cmd.Points, p)
		}
	case OpDown, OpMove:
		p, err := parseXY(args)
		if err != nil {
			return cmd, fmt.Errorf("%s: %w", op, err)
		}
		cmd.Points = []stroke.Point{p}
	case OpLayout:
		p, err := parseXY(args)
		if err != nil {
			return cmd, fmt.Errorf("layout: %w", err)
		}
		cmd.W, cmd.H = p.X, p.Y
	case OpMask:
		if len(args) != 1 {
			return cmd, fmt.Errorf("mask takes one path")
		}
		cmd.Path = args[0]
	case OpUp, OpLeave, OpUndo, OpRedo, OpClear:
		if len(args) != 0 {
			return cmd, fmt.Errorf("%s takes no arguments", op)
		}
	default:
		return cmd, fmt.Errorf("unknown command %q", fields[0])
	}
	return cmd, nil
}

// parseXY accepts "x y" or "x,y".
func parseXY(args []string) (stroke.Point, error) {
	switch len(args) {
	case 1:
		return parsePair(args[0])
	case 2:
		return parsePair(args[0] + "," + args[1])
	}
	return stroke.Point{}, fmt.Errorf("expected x y")
}

func parsePair(s string) (stroke.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return stroke.Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return stroke.Point{}, fmt.Errorf("invalid point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return stroke.Point{}, fmt.Errorf("invalid point %q", s)
	}
	return stroke.Point{X: x, Y: y}, nil
}
