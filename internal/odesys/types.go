package odesys

import "math"

// State is an ordered vector of float64 values. The same representation is
// used for state, rate, and variable vectors; an entry's index is its
// identity for the lifetime of a run.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is the contract every integrable model satisfies. The solver core
// depends only on this interface, never on a concrete model.
//
// The three factories return vectors of the model's fixed sizes; state and
// rate vectors must have equal length. InitializeConstants writes initial
// state values and constant variable entries, ComputeComputedConstants
// derives variable entries that are algebraic functions of those constants,
// and ComputeRates writes d(states)/dt at t into rates, optionally
// refreshing non-constant variable entries as a side effect. ComputeRates
// must depend only on (t, states, variables); models keep no hidden state
// between evaluations.
type System interface {
	CreateStateVector() State
	CreateRateVector() State
	CreateVariableVector() State
	InitializeConstants(states, variables State)
	ComputeComputedConstants(variables State)
	ComputeRates(t float64, states, rates, variables State)
}

// Labeled is implemented by models that can name their state entries, used
// for plot captions and export headers.
type Labeled interface {
	StateLabels() []string
}

// Interval is the forward time span [Start, End) of an integration run.
type Interval struct {
	Start float64
	End   float64
}

// Empty reports whether the interval contains no time to integrate over.
// An empty interval is a valid zero-sample run, not an error.
func (iv Interval) Empty() bool { return iv.Start >= iv.End }

// Labels returns sys's state labels, or nil if it has none.
func Labels(sys System) []string {
	if l, ok := sys.(Labeled); ok {
		return l.StateLabels()
	}
	return nil
}
