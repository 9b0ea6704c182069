package session

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecService runs an external program per edit. The masked PNG is written
// to its stdin, the instruction is passed as the last argument and in
// MASKBRUSH_INSTRUCTION, and the program's stdout is the result image.
type ExecService struct {
	Path string
	Args []string
}

// ParseExec splits a command line on whitespace into an ExecService.
func ParseExec(cmdline string) (*ExecService, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty edit command")
	}
	return &ExecService{Path: fields[0], Args: fields[1:]}, nil
}

// Edit implements EditService.
func (e *ExecService) Edit(ctx context.Context, maskedPNG []byte, instruction string) ([]byte, error) {
	args := append(append([]string{}, e.Args...), instruction)
	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Stdin = bytes.NewReader(maskedPNG)
	cmd.Env = append(os.Environ(), "MASKBRUSH_INSTRUCTION="+instruction)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", e.Path, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", e.Path, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s: no output", e.Path)
	}
	return stdout.Bytes(), nil
}
