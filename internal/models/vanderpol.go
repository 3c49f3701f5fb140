package models

import "github.com/san-kum/cellsolve/internal/odesys"

// VanDerPol is the Van der Pol oscillator x'' - mu(1-x^2)x' + x = 0 as a
// first-order system. Large damping values make it strongly stiff, which
// exercises the implicit solver.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 5.0}
}

func NewStiffVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 1000.0}
}

func (m *VanDerPol) CreateStateVector() odesys.State    { return make(odesys.State, 2) }
func (m *VanDerPol) CreateRateVector() odesys.State     { return make(odesys.State, 2) }
func (m *VanDerPol) CreateVariableVector() odesys.State { return make(odesys.State, 1) }

func (m *VanDerPol) StateLabels() []string { return []string{"x", "v"} }

func (m *VanDerPol) InitializeConstants(states, variables odesys.State) {
	states[0] = 2.0
	states[1] = 0.0
	variables[0] = m.Mu
}

func (m *VanDerPol) ComputeComputedConstants(variables odesys.State) {}

func (m *VanDerPol) ComputeRates(t float64, states, rates, variables odesys.State) {
	x, v := states[0], states[1]
	mu := variables[0]
	rates[0] = v
	rates[1] = mu*(1.0-x*x)*v - x
}
