package odesys

import (
	"errors"
	"testing"
)

// recordingSystem tracks the order of contract calls.
type recordingSystem struct {
	stateLen int
	rateLen  int
	calls    []string
}

func (r *recordingSystem) CreateStateVector() State {
	r.calls = append(r.calls, "states")
	return make(State, r.stateLen)
}

func (r *recordingSystem) CreateRateVector() State {
	r.calls = append(r.calls, "rates")
	return make(State, r.rateLen)
}

func (r *recordingSystem) CreateVariableVector() State {
	r.calls = append(r.calls, "variables")
	return make(State, 1)
}

func (r *recordingSystem) InitializeConstants(states, variables State) {
	r.calls = append(r.calls, "initializeConstants")
	states[0] = 1.0
	variables[0] = 2.0
}

func (r *recordingSystem) ComputeComputedConstants(variables State) {
	r.calls = append(r.calls, "computeComputedConstants")
	variables[0] *= 2
}

func (r *recordingSystem) ComputeRates(t float64, states, rates, variables State) {
	r.calls = append(r.calls, "computeRates")
}

func TestInitialize_Order(t *testing.T) {
	sys := &recordingSystem{stateLen: 1, rateLen: 1}

	states, rates, variables, err := Initialize(sys)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	want := []string{"states", "rates", "variables", "initializeConstants", "computeComputedConstants"}
	if len(sys.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", sys.calls, want)
	}
	for i := range want {
		if sys.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, sys.calls[i], want[i])
		}
	}

	if states[0] != 1.0 {
		t.Errorf("states[0] = %v, want 1.0", states[0])
	}
	if variables[0] != 4.0 {
		t.Errorf("variables[0] = %v, want 4.0 (computed from initialized constant)", variables[0])
	}
	if len(rates) != 1 {
		t.Errorf("rates length = %d, want 1", len(rates))
	}
}

func TestInitialize_ContractViolations(t *testing.T) {
	tests := []struct {
		name     string
		stateLen int
		rateLen  int
	}{
		{"no states", 0, 0},
		{"rate shorter than state", 3, 2},
		{"rate longer than state", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &recordingSystem{stateLen: tt.stateLen, rateLen: tt.rateLen}
			_, _, _, err := Initialize(sys)
			if !errors.Is(err, ErrContractViolation) {
				t.Errorf("err = %v, want ErrContractViolation", err)
			}
		})
	}
}
