package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for force evaluation. All of them are configuration faults:
// nothing is retried, the inputs have to be fixed before the next call.
var (
	// ErrInvalidParameter indicates a potential, box or config value outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrGridCutoffMismatch indicates a cell list that cannot see every pair within the cutoff.
	ErrGridCutoffMismatch = errors.New("dynamo: grid does not match cutoff")

	// ErrDegenerateSeparation indicates two distinct atoms at zero separation.
	ErrDegenerateSeparation = errors.New("dynamo: degenerate pair separation")

	// ErrInvalidForces indicates a non-finite force accumulator after evaluation.
	ErrInvalidForces = errors.New("dynamo: invalid forces (NaN or Inf detected)")
)

// EvalError wraps an error with the evaluation it happened in.
type EvalError struct {
	Call    int
	Atom    int
	Wrapped error
}

func (e *EvalError) Error() string {
	if e.Atom >= 0 {
		return fmt.Sprintf("evaluation %d (atom %d): %v", e.Call, e.Atom, e.Wrapped)
	}
	return fmt.Sprintf("evaluation %d: %v", e.Call, e.Wrapped)
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
