package solver

import (
	"fmt"

	"github.com/san-kum/cellsolve/internal/odesys"
)

// Euler is the fixed-step explicit driver: each tick evaluates the rates at
// t, records the sample (t, states), then advances every state entry by
// rate * stepSize. First order; accuracy is entirely the caller's
// responsibility via stepSize. An empty interval yields an empty
// trajectory.
func Euler(sys odesys.System, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("%w: got %g", odesys.ErrInvalidStepSize, stepSize)
	}

	states, rates, variables, err := odesys.Initialize(sys)
	if err != nil {
		return nil, err
	}

	tr := odesys.NewTrajectory(len(states))
	for t := interval.Start; t < interval.End; t += stepSize {
		sys.ComputeRates(t, states, rates, variables)
		tr.Append(t, states)
		for i := range states {
			states[i] += rates[i] * stepSize
		}
	}

	return tr, nil
}
