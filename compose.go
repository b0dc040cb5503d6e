package comp

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

type (
	// Composed is a flat, fixed-length chain of callables representing
	// the right-to-left pipeline f0 ∘ f1 ∘ ... ∘ fn-1.
	// The last element is invoked first with the initial arguments;
	// every earlier element receives exactly one value, the result of
	// the element after it.
	Composed struct {
		stages []*caller
	}

	// StageError reports a callable that cannot participate in a
	// composition at its position.
	StageError struct {
		Index  int
		Reason error
	}
)

// ErrNoCallables is returned when composing zero callables.
// A chain must have length >= 1; use Identity or Noop for an
// explicit pass-through pipeline.
var ErrNoCallables = errors.New("at least one callable is required")

func (e *StageError) Error() string {
	return fmt.Sprintf("invalid stage %v: %v", e.Index, e.Reason)
}

func (e *StageError) Unwrap() error { return e.Reason }

// Compose builds a single flat chain from one or more callables.
// Arguments that are themselves chains are spliced element-wise, so
// composing compositions never nests: the result's length is the
// total element count after flattening.
// All statically knowable well-formedness is checked here, before any
// invocation: every stage but the innermost must accept exactly one
// argument, every stage but the outermost must produce exactly one
// result, and adjacent stages with concrete result/parameter types
// must be assignment-compatible.  All violations are reported at once.
func Compose(fns ...any) (*Composed, error) {
	if len(fns) == 0 {
		return nil, ErrNoCallables
	}
	var invalid error
	var stages []*caller
	for _, fn := range fns {
		switch f := fn.(type) {
		case *Composed:
			stages = append(stages, f.stages...)
		case Composed:
			stages = append(stages, f.stages...)
		default:
			if c, err := makeCaller(fn); err != nil {
				invalid = multierror.Append(invalid, err)
			} else {
				stages = append(stages, c)
			}
		}
	}
	// chains passed as arguments may themselves be empty
	if invalid == nil && len(stages) == 0 {
		return nil, ErrNoCallables
	}
	if invalid == nil {
		invalid = validateStages(stages)
	}
	if invalid != nil {
		return nil, invalid
	}
	return &Composed{stages}, nil
}

// MustCompose is like Compose but panics if the chain is malformed.
func MustCompose(fns ...any) *Composed {
	c, err := Compose(fns...)
	if err != nil {
		panic(err)
	}
	return c
}

// validateStages checks the single-value threading contract between
// neighboring stages.
func validateStages(stages []*caller) error {
	var invalid error
	last := len(stages) - 1
	for i, s := range stages {
		if i < last && !s.acceptsCount(1) {
			invalid = multierror.Append(invalid, &StageError{i, fmt.Errorf(
				"%v must accept the single result of the next stage",
				s.typ)})
		}
		if i > 0 && s.typ.NumOut() != 1 {
			invalid = multierror.Append(invalid, &StageError{i, fmt.Errorf(
				"%v must produce exactly one result, not %v",
				s.typ, s.typ.NumOut())})
		}
	}
	for i := 0; i < last; i++ {
		consumer, producer := stages[i], stages[i+1]
		if producer.typ.NumOut() != 1 {
			continue
		}
		out := producer.typ.Out(0)
		if out.Kind() == reflect.Interface {
			// only checkable dynamically
			continue
		}
		if in := consumer.soleArgType(); in != nil && !out.AssignableTo(in) {
			invalid = multierror.Append(invalid, &StageError{i, fmt.Errorf(
				"%v cannot accept the %v produced by the next stage",
				consumer.typ, out)})
		}
	}
	return invalid
}

// Compose joins the chain with more callables or chains, producing a
// new flat chain.  The receiver's elements come first (outermost).
// When the left operand is a bare callable rather than a chain, use
// the package-level Compose(bare, chain) for the mirrored join.
func (c *Composed) Compose(fns ...any) (*Composed, error) {
	return Compose(append([]any{c}, fns...)...)
}

// Len returns the number of elements in the flattened chain.
func (c *Composed) Len() int {
	return len(c.stages)
}

// Invoke threads args through the chain right-to-left: the innermost
// callable receives args, each remaining callable receives the single
// result of the one before it, and the outermost callable's results
// are returned.  The chain is never consumed and may be invoked any
// number of times.  Failures raised by the callables themselves
// propagate unchanged.
func (c *Composed) Invoke(args ...any) []any {
	last := len(c.stages) - 1
	out := c.stages[last].invoke(args...)
	for i := last - 1; i >= 0; i-- {
		out = c.stages[i].invoke(out[0])
	}
	return out
}

// Call invokes the chain and returns its first result as R.
// It returns the zero value if the chain produced no results.
func Call[R any](c *Composed, args ...any) R {
	out := c.Invoke(args...)
	if len(out) == 0 || out[0] == nil {
		var zero R
		return zero
	}
	return out[0].(R)
}
