package runner

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/cellsolve/internal/models"
	"github.com/san-kum/cellsolve/internal/odesys"
	"github.com/san-kum/cellsolve/internal/solver"
)

// Config describes one integration run.
type Config struct {
	Model    string
	Solver   string
	Interval odesys.Interval
	StepSize float64
	// Repeat > 1 wraps the driver so it runs that many independent
	// repetitions and logs the average wall-clock time per run.
	Repeat int
}

// Result is a completed run. Partial marks a trajectory truncated by an
// underlying solver failure; everything collected before the failure is
// still present.
type Result struct {
	Trajectory *odesys.Trajectory
	Labels     []string
	Elapsed    time.Duration
	Partial    bool
}

type Runner struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Run resolves the model and solver, integrates, and applies the partial
// result policy: an ErrSolverFailure is reported as a warning and the
// truncated trajectory is returned with Partial set, while every other
// failure (unknown method, invalid step size, contract violation) is
// returned as an error with no trajectory.
func (r *Runner) Run(cfg Config) (*Result, error) {
	sys, err := models.Get(cfg.Model)
	if err != nil {
		return nil, err
	}

	drv, err := solver.For(cfg.Solver)
	if err != nil {
		return nil, err
	}
	if cfg.Repeat > 1 {
		drv = solver.Timed(drv, cfg.Repeat, r.log)
	}

	r.log.Debug().
		Str("model", cfg.Model).
		Str("solver", cfg.Solver).
		Float64("start", cfg.Interval.Start).
		Float64("end", cfg.Interval.End).
		Float64("step_size", cfg.StepSize).
		Msg("starting run")

	start := time.Now()
	tr, err := drv(sys, cfg.StepSize, cfg.Interval)
	elapsed := time.Since(start)

	res := &Result{
		Trajectory: tr,
		Labels:     odesys.Labels(sys),
		Elapsed:    elapsed,
	}

	if err != nil {
		if errors.Is(err, odesys.ErrSolverFailure) && tr != nil {
			r.log.Warn().Err(err).Int("samples", tr.Len()).
				Msg("solver stopped early; keeping partial trajectory")
			res.Partial = true
			return res, nil
		}
		return nil, err
	}

	r.log.Info().Int("samples", tr.Len()).Dur("elapsed", elapsed).Msg("run complete")
	return res, nil
}
