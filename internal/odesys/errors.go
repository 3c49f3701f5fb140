package odesys

import "errors"

var (
	// ErrInvalidStepSize reports a zero or negative step size. Rejected
	// before any integration starts; no trajectory is produced.
	ErrInvalidStepSize = errors.New("step size must be positive")

	// ErrUnknownMethod reports an unrecognized solver identifier. It is
	// recoverable at the CLI boundary and never fatal to the process.
	ErrUnknownMethod = errors.New("unknown solver method")

	// ErrContractViolation reports a model whose vectors are inconsistent,
	// detected at initialization rather than mid-integration.
	ErrContractViolation = errors.New("model contract violation")

	// ErrSolverFailure reports that a variable-step solver could not
	// proceed mid-run. The trajectory accumulated so far is still
	// returned; callers decide whether the partial result is acceptable.
	ErrSolverFailure = errors.New("underlying solver failure")
)
