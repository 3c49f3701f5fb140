package models

import (
	"math"

	"github.com/san-kum/cellsolve/internal/odesys"
)

// State vector layout.
const (
	hhStateV = iota // membrane potential (mV)
	hhStateM        // sodium activation gate
	hhStateH        // sodium inactivation gate
	hhStateN        // potassium activation gate
	hhStateCount
)

// Variable vector layout. The first block is constants, the second is
// computed constants, the rest is refreshed by ComputeRates.
const (
	hhVarCm    = iota // membrane capacitance (uF/cm2)
	hhVarER           // resting potential (mV)
	hhVarGL           // leak conductance (mS/cm2)
	hhVarGNa          // sodium conductance (mS/cm2)
	hhVarGK           // potassium conductance (mS/cm2)
	hhVarEL           // leak reversal potential (mV)
	hhVarENa          // sodium reversal potential (mV)
	hhVarEK           // potassium reversal potential (mV)
	hhVarIStim        // stimulus current (uA/cm2)
	hhVarINa          // sodium current (uA/cm2)
	hhVarIK           // potassium current (uA/cm2)
	hhVarIL           // leak current (uA/cm2)
	hhVarCount
)

// HodgkinHuxley is the 1952 squid giant axon membrane model, the bundled
// reference system. Four differential variables (membrane potential and
// three gating variables) and twelve auxiliary variables. A 20 uA/cm2
// stimulus pulse is applied between t=10 ms and t=10.5 ms.
type HodgkinHuxley struct{}

func NewHodgkinHuxley() *HodgkinHuxley {
	return &HodgkinHuxley{}
}

func (m *HodgkinHuxley) CreateStateVector() odesys.State {
	return make(odesys.State, hhStateCount)
}

func (m *HodgkinHuxley) CreateRateVector() odesys.State {
	return make(odesys.State, hhStateCount)
}

func (m *HodgkinHuxley) CreateVariableVector() odesys.State {
	return make(odesys.State, hhVarCount)
}

func (m *HodgkinHuxley) StateLabels() []string {
	return []string{"V", "m", "h", "n"}
}

func (m *HodgkinHuxley) InitializeConstants(states, variables odesys.State) {
	states[hhStateV] = -75.0
	states[hhStateM] = 0.05
	states[hhStateH] = 0.6
	states[hhStateN] = 0.325

	variables[hhVarCm] = 1.0
	variables[hhVarER] = -75.0
	variables[hhVarGL] = 0.3
	variables[hhVarGNa] = 120.0
	variables[hhVarGK] = 36.0
}

func (m *HodgkinHuxley) ComputeComputedConstants(variables odesys.State) {
	variables[hhVarEL] = variables[hhVarER] + 10.613
	variables[hhVarENa] = variables[hhVarER] + 115.0
	variables[hhVarEK] = variables[hhVarER] - 12.0
}

func (m *HodgkinHuxley) ComputeRates(t float64, states, rates, variables odesys.State) {
	v := states[hhStateV]
	gm := states[hhStateM]
	gh := states[hhStateH]
	gn := states[hhStateN]

	if t >= 10.0 && t <= 10.5 {
		variables[hhVarIStim] = 20.0
	} else {
		variables[hhVarIStim] = 0.0
	}

	variables[hhVarINa] = variables[hhVarGNa] * gm * gm * gm * gh * (v - variables[hhVarENa])
	variables[hhVarIK] = variables[hhVarGK] * gn * gn * gn * gn * (v - variables[hhVarEK])
	variables[hhVarIL] = variables[hhVarGL] * (v - variables[hhVarEL])

	alphaM := -0.1 * (v + 50.0) / (math.Exp(-(v+50.0)/10.0) - 1.0)
	betaM := 4.0 * math.Exp(-(v+75.0)/18.0)
	alphaH := 0.07 * math.Exp(-(v+75.0)/20.0)
	betaH := 1.0 / (math.Exp(-(v+45.0)/10.0) + 1.0)
	alphaN := -0.01 * (v + 65.0) / (math.Exp(-(v+65.0)/10.0) - 1.0)
	betaN := 0.125 * math.Exp((v+75.0)/80.0)

	rates[hhStateV] = -(-variables[hhVarIStim] + variables[hhVarINa] + variables[hhVarIK] + variables[hhVarIL]) / variables[hhVarCm]
	rates[hhStateM] = alphaM*(1.0-gm) - betaM*gm
	rates[hhStateH] = alphaH*(1.0-gh) - betaH*gh
	rates[hhStateN] = alphaN*(1.0-gn) - betaN*gn
}
