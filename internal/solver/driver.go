package solver

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/cellsolve/internal/odesys"
)

// Driver advances a system's state across an interval, sampling the
// independent variable and every state entry once per stepSize. Drivers are
// pure functions: each call initializes fresh vectors and owns them for the
// run's duration.
type Driver func(sys odesys.System, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error)

var drivers = map[string]Driver{
	"euler":  Euler,
	"dopri5": Dopri5,
	"bdf":    BDF,
}

// Default is the method used when the caller does not pick one.
const Default = "euler"

// Names returns the recognized method identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For maps a method identifier to its driver. Unrecognized identifiers
// yield ErrUnknownMethod and no driver.
func For(name string) (Driver, error) {
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (recognized: %s)",
			odesys.ErrUnknownMethod, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Timed wraps a driver so that it runs n independent repetitions and logs
// the average wall-clock time per run. Each repetition initializes fresh
// vectors, so no state leaks between iterations. The final repetition's
// result is returned unchanged.
func Timed(d Driver, n int, log zerolog.Logger) Driver {
	if n < 1 {
		n = 1
	}
	return func(sys odesys.System, stepSize float64, interval odesys.Interval) (*odesys.Trajectory, error) {
		var (
			tr  *odesys.Trajectory
			err error
		)
		runs := 0
		start := time.Now()
		for i := 0; i < n; i++ {
			tr, err = d(sys, stepSize, interval)
			runs++
			if err != nil {
				break
			}
		}
		avg := time.Since(start).Seconds() * 1000 / float64(runs)
		log.Info().Int("runs", runs).Float64("avg_ms", avg).Msg("timed solver runs")
		return tr, err
	}
}
