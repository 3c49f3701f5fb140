package runner

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/cellsolve/internal/odesys"
)

func TestRunner_Run(t *testing.T) {
	r := New(zerolog.Nop())

	res, err := r.Run(Config{
		Model:    "decay",
		Solver:   "euler",
		Interval: odesys.Interval{Start: 0, End: 1},
		StepSize: 0.25,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Trajectory.Len() != 4 {
		t.Errorf("got %d samples, want 4", res.Trajectory.Len())
	}
	if res.Partial {
		t.Error("run marked partial")
	}
	if len(res.Labels) != 1 || res.Labels[0] != "y" {
		t.Errorf("labels = %v, want [y]", res.Labels)
	}
}

func TestRunner_UnknownSolver(t *testing.T) {
	r := New(zerolog.Nop())

	res, err := r.Run(Config{
		Model:    "decay",
		Solver:   "rk4",
		Interval: odesys.Interval{Start: 0, End: 1},
		StepSize: 0.25,
	})
	if !errors.Is(err, odesys.ErrUnknownMethod) {
		t.Errorf("err = %v, want ErrUnknownMethod", err)
	}
	if res != nil {
		t.Error("got a result for an unknown solver")
	}
}

func TestRunner_UnknownModel(t *testing.T) {
	r := New(zerolog.Nop())

	if _, err := r.Run(Config{
		Model:    "squid",
		Solver:   "euler",
		Interval: odesys.Interval{Start: 0, End: 1},
		StepSize: 0.25,
	}); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestRunner_InvalidStepSize(t *testing.T) {
	r := New(zerolog.Nop())

	_, err := r.Run(Config{
		Model:    "decay",
		Solver:   "euler",
		Interval: odesys.Interval{Start: 0, End: 1},
		StepSize: -1,
	})
	if !errors.Is(err, odesys.ErrInvalidStepSize) {
		t.Errorf("err = %v, want ErrInvalidStepSize", err)
	}
}

func TestRunner_Repeat(t *testing.T) {
	r := New(zerolog.Nop())

	res, err := r.Run(Config{
		Model:    "decay",
		Solver:   "euler",
		Interval: odesys.Interval{Start: 0, End: 1},
		StepSize: 0.25,
		Repeat:   3,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Trajectory.Len() != 4 {
		t.Errorf("got %d samples after repeated runs, want 4", res.Trajectory.Len())
	}
}
