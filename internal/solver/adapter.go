package solver

import (
	"fmt"

	"github.com/san-kum/cellsolve/internal/odesys"
)

// rateFunc is the derivative callback handed to variable-step solvers; it
// writes d(y)/dt at t into dy.
type rateFunc func(t float64, y, dy []float64)

// variableStep is the protocol shared by the adaptive and implicit
// steppers: set an initial condition, then integrate forward to requested
// times with internally chosen sub-steps, tracking the current (time,
// state) pair.
type variableStep interface {
	Reset(f rateFunc, t0 float64, y0 []float64)
	// AdvanceTo integrates until the solver's time reaches target exactly.
	AdvanceTo(target float64) error
	Time() float64
	State() []float64
}

// sample drives a variable-step solver across the interval, recording one
// sample per stepSize of the independent variable. stepSize is a sampling
// cadence, not an integration step: the solver subdivides internally to
// meet its own accuracy and stability goals. If the solver fails mid-run,
// the trajectory accumulated so far is returned together with a wrapped
// ErrSolverFailure; the partial result is usable.
func sample(sys odesys.System, vs variableStep, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("%w: got %g", odesys.ErrInvalidStepSize, stepSize)
	}

	states, rates, variables, err := odesys.Initialize(sys)
	if err != nil {
		return nil, err
	}

	// The run's single rate vector is reused for every evaluation, matching
	// the model contract's overwrite-in-place semantics.
	f := func(t float64, y, dy []float64) {
		sys.ComputeRates(t, y, rates, variables)
		copy(dy, rates)
	}
	vs.Reset(f, interval.Start, states)

	tr := odesys.NewTrajectory(len(states))
	for vs.Time() < interval.End {
		if err := vs.AdvanceTo(vs.Time() + stepSize); err != nil {
			return tr, fmt.Errorf("%w: %v", odesys.ErrSolverFailure, err)
		}
		tr.Append(vs.Time(), vs.State())
	}

	return tr, nil
}

// Dopri5 samples an adaptive Dormand-Prince 5(4) integration at stepSize
// cadence. Suited to non-stiff systems needing higher accuracy than the
// fixed-step driver.
func Dopri5(sys odesys.System, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error) {
	return sample(sys, newDopri(), stepSize, interval)
}

// BDF samples an implicit backward-differentiation integration at stepSize
// cadence. Suited to stiff systems.
func BDF(sys odesys.System, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error) {
	return sample(sys, newBDF(), stepSize, interval)
}
