package odesys

import "fmt"

// Initialize builds a run's three vectors and fills in constants. The order
// is load-bearing: factories first, then InitializeConstants, then
// ComputeComputedConstants (computed constants may read values the former
// wrote). The returned vectors are ready for the first rate evaluation and
// are owned by the caller for the run's duration.
func Initialize(sys System) (states, rates, variables State, err error) {
	states = sys.CreateStateVector()
	rates = sys.CreateRateVector()
	variables = sys.CreateVariableVector()

	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: model has no state entries", ErrContractViolation)
	}
	if len(rates) != len(states) {
		return nil, nil, nil, fmt.Errorf("%w: rate vector length %d, state vector length %d",
			ErrContractViolation, len(rates), len(states))
	}

	sys.InitializeConstants(states, variables)
	sys.ComputeComputedConstants(variables)

	return states, rates, variables, nil
}
