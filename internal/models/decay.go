package models

import "github.com/san-kum/cellsolve/internal/odesys"

// Decay is the scalar system y' = -y, y(0) = 1. Its closed-form solution
// exp(-t) makes it the known-answer model for solver tests, and its stable
// equilibrium at zero makes it the cross-solver agreement model.
type Decay struct{}

func NewDecay() *Decay {
	return &Decay{}
}

func (m *Decay) CreateStateVector() odesys.State    { return make(odesys.State, 1) }
func (m *Decay) CreateRateVector() odesys.State     { return make(odesys.State, 1) }
func (m *Decay) CreateVariableVector() odesys.State { return nil }

func (m *Decay) StateLabels() []string { return []string{"y"} }

func (m *Decay) InitializeConstants(states, variables odesys.State) {
	states[0] = 1.0
}

func (m *Decay) ComputeComputedConstants(variables odesys.State) {}

func (m *Decay) ComputeRates(t float64, states, rates, variables odesys.State) {
	rates[0] = -states[0]
}
