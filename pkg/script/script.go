package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/markup"
)

// DefaultMaxProgramBytes bounds the size of a program source.
const DefaultMaxProgramBytes = 1 << 20

// Evaluator compiles and runs programs. The zero value is ready to use.
type Evaluator struct {
	// MaxProgramBytes limits the program size. Zero means
	// DefaultMaxProgramBytes.
	MaxProgramBytes int
}

// Result is the outcome of a successful run.
type Result struct {
	// SVG is the program output, as returned.
	SVG string
	// Root is the document the output was rendered from, when the program
	// returned the result of render. It is nil for hand-written strings.
	Root *markup.Node
}

// Eval runs src and returns its SVG output.
func (e *Evaluator) Eval(ctx context.Context, src string) (string, error) {
	res, err := e.Run(ctx, src)
	if err != nil {
		return "", err
	}
	return res.SVG, nil
}

// Check compiles src without running it.
func (e *Evaluator) Check(src string) error {
	if err := errors.ValidateProgram(src, e.maxBytes()); err != nil {
		return err
	}
	if _, err := expr.Compile(src, newRunState().options()...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProgram, err, "compile failed")
	}
	return nil
}

// Run compiles and runs src. The program must return a string that starts
// with "<svg" once leading whitespace is trimmed.
//
// Compile errors carry ErrCodeInvalidProgram. A failing DSL call keeps its
// own code (ErrCodePrecondition for pen commands without a current point,
// ErrCodeInvalidInput for bad arguments); other runtime failures carry
// ErrCodeEvalFailed. A result that is not SVG carries ErrCodeInvalidOutput.
func (e *Evaluator) Run(ctx context.Context, src string) (*Result, error) {
	if err := errors.ValidateProgram(src, e.maxBytes()); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "evaluation cancelled")
	}

	st := newRunState()
	prog, err := expr.Compile(src, st.options()...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProgram, err, "compile failed")
	}

	type outcome struct {
		out any
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := expr.Run(prog, map[string]any{})
		done <- outcome{out, err}
	}()

	var res outcome
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "evaluation cancelled")
	case res = <-done:
	}

	if res.err != nil {
		if st.err != nil {
			// st.err already carries its code.
			return nil, fmt.Errorf("evaluation failed: %w", st.err)
		}
		return nil, errors.Wrap(errors.ErrCodeEvalFailed, res.err, "evaluation failed")
	}

	out, err := validateOutput(res.out)
	if err != nil {
		return nil, err
	}
	return &Result{SVG: out, Root: st.rendered[out]}, nil
}

func validateOutput(v any) (string, error) {
	out, ok := v.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidOutput,
			"Program must return an SVG string. Got: %s", typeName(v))
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "<svg") {
		return "", errors.New(errors.ErrCodeInvalidOutput,
			"Output doesn't look like SVG. Expected string starting with <svg ...>.")
	}
	return out, nil
}

func (e *Evaluator) maxBytes() int {
	if e.MaxProgramBytes > 0 {
		return e.MaxProgramBytes
	}
	return DefaultMaxProgramBytes
}
