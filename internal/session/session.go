// Package session ties a mask engine to an external edit service. It gates
// submission on a selection, keeps an undoable list of generated variant
// sets and runs the refinement brush on a chosen result.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/maskbrush/internal/geometry"
	"github.com/example/maskbrush/internal/history"
	"github.com/example/maskbrush/internal/mask"
	"github.com/example/maskbrush/internal/raster"
	"github.com/example/maskbrush/internal/refine"
)

// DefaultVariants is the number of results requested per generation.
const DefaultVariants = 4

var (
	// ErrNoSelection is returned by Generate while nothing is selected.
	ErrNoSelection = errors.New("no area selected")
	// ErrNoGeneration is returned when there is no current generation.
	ErrNoGeneration = errors.New("no generation")
	// ErrRefining is returned when a refinement is already open.
	ErrRefining = errors.New("refinement in progress")
)

// EditService fills the transparent region of a masked image according to
// an instruction and returns the new image.
type EditService interface {
	Edit(ctx context.Context, maskedPNG []byte, instruction string) ([]byte, error)
}

// EditFunc adapts a function to EditService.
type EditFunc func(ctx context.Context, maskedPNG []byte, instruction string) ([]byte, error)

// Edit calls f.
func (f EditFunc) Edit(ctx context.Context, maskedPNG []byte, instruction string) ([]byte, error) {
	return f(ctx, maskedPNG, instruction)
}

// Generation is one set of variants produced from a single submission.
type Generation struct {
	ID          uuid.UUID
	Instruction string
	Created     time.Time
	Results     [][]byte
}

// Option configures a Session.
type Option func(*Session)

// WithVariants sets how many results each Generate requests.
func WithVariants(n int) Option { return func(s *Session) { s.variants = n } }

// WithProgress registers a callback receiving completion in percent after
// each variant.
func WithProgress(fn func(percent float64)) Option { return func(s *Session) { s.onProgress = fn } }

// WithRefineOptions passes options to every refinement editor.
func WithRefineOptions(opts ...refine.Option) Option {
	return func(s *Session) { s.refineOpts = append(s.refineOpts, opts...) }
}

type refinement struct {
	editor *refine.Editor
	gen    *Generation
	index  int
}

// Session owns the generation history for one source image.
type Session struct {
	engine     *mask.Engine
	service    EditService
	variants   int
	onProgress func(float64)
	refineOpts []refine.Option

	gens        *history.Log[*Generation]
	refining    *refinement
	instruction string
}

// New creates a Session over engine.
func New(engine *mask.Engine, service EditService, opts ...Option) *Session {
	s := &Session{
		engine:   engine,
		service:  service,
		variants: DefaultVariants,
		gens:     history.New[*Generation](),
	}
	for _, o := range opts {
		o(s)
	}
	if s.variants < 1 {
		s.variants = 1
	}
	return s
}

// Prompt wraps an instruction with the inpainting context the service is
// given.
func Prompt(instruction string) string {
	return fmt.Sprintf("The image has a transparent region. Fill it according to this instruction: %q. "+
		"The result should look realistic and blend seamlessly with the rest of the image.", instruction)
}

// Generate submits the current export once per variant and records the
// results as a new generation.
func (s *Session) Generate(ctx context.Context, instruction string) (*Generation, error) {
	x := s.engine.Export()
	if x.Empty() {
		return nil, ErrNoSelection
	}
	prompt := Prompt(instruction)
	results := make([][]byte, 0, s.variants)
	for i := 0; i < s.variants; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		out, err := s.service.Edit(ctx, x.PNG, prompt)
		if err != nil {
			mask.Logger().Warn("edit failed", "variant", i+1, "err", err)
			return nil, fmt.Errorf("variant %d: %w", i+1, err)
		}
		mask.Logger().Debug("variant generated", "variant", i+1, "bytes", len(out), "elapsed", time.Since(start))
		results = append(results, out)
		if s.onProgress != nil {
			s.onProgress(float64(i+1) / float64(s.variants) * 100)
		}
	}
	gen := &Generation{
		ID:          uuid.New(),
		Instruction: instruction,
		Created:     time.Now(),
		Results:     results,
	}
	s.instruction = instruction
	s.gens.Commit(gen)
	return gen, nil
}

// Retry repeats the last instruction.
func (s *Session) Retry(ctx context.Context) (*Generation, error) {
	if s.instruction == "" {
		return nil, ErrNoGeneration
	}
	return s.Generate(ctx, s.instruction)
}

// Current returns the generation under the history cursor.
func (s *Session) Current() (*Generation, bool) { return s.gens.Current() }

// Generations returns how many generations are recorded.
func (s *Session) Generations() int { return s.gens.Len() }

// CanUndo reports whether an earlier generation can be shown. The first
// generation is never undone.
func (s *Session) CanUndo() bool { return s.gens.Cursor() > 0 }

// CanRedo reports whether a later generation can be shown.
func (s *Session) CanRedo() bool { return s.gens.CanRedo() }

// Undo shows the previous generation.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	return s.gens.Undo()
}

// Redo shows the next generation.
func (s *Session) Redo() bool { return s.gens.Redo() }

// RefineMask clears the selection so a new area can be drawn. Generation
// history is kept.
func (s *Session) RefineMask() { s.engine.Clear() }

// Reset drops all generations and the selection.
func (s *Session) Reset() {
	s.CancelRefine()
	s.gens.Clear()
	s.instruction = ""
	s.engine.Clear()
}

// StartRefine opens a refinement editor on result index of the current
// generation. Restore paints from the engine's source image.
func (s *Session) StartRefine(index int, size geometry.Size) (*refine.Editor, error) {
	if s.refining != nil {
		return nil, ErrRefining
	}
	gen, ok := s.gens.Current()
	if !ok {
		return nil, ErrNoGeneration
	}
	if index < 0 || index >= len(gen.Results) {
		return nil, fmt.Errorf("refine result %d: out of range [0,%d)", index, len(gen.Results))
	}
	base, _, err := raster.Decode(gen.Results[index])
	if err != nil {
		return nil, fmt.Errorf("refine result %d: %w", index, err)
	}
	r := &refinement{gen: gen, index: index}
	opts := append([]refine.Option{}, s.refineOpts...)
	opts = append(opts,
		refine.WithApplied(func(data []byte) { s.applied(r, data) }),
		refine.WithCancelled(func() { s.finish(r) }),
	)
	ed, err := refine.New(base, s.engine.Source(), size, opts...)
	if err != nil {
		return nil, err
	}
	r.editor = ed
	s.refining = r
	return ed, nil
}

// Refining reports whether a refinement editor is open.
func (s *Session) Refining() bool { return s.refining != nil }

// ApplyRefine writes the refined result back into its generation.
func (s *Session) ApplyRefine() ([]byte, error) {
	if s.refining == nil {
		return nil, ErrNoGeneration
	}
	return s.refining.editor.Apply()
}

// CancelRefine closes the editor without changing the result.
func (s *Session) CancelRefine() {
	if s.refining == nil {
		return
	}
	s.refining.editor.Cancel()
}

func (s *Session) applied(r *refinement, data []byte) {
	r.gen.Results[r.index] = data
	s.finish(r)
}

func (s *Session) finish(r *refinement) {
	if s.refining == r {
		s.refining = nil
	}
}
