package solver

import (
	"fmt"
	"math"
)

// Dormand-Prince 5(4) coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// dopri is an adaptive Dormand-Prince 5(4) stepper behind the variableStep
// protocol. The embedded fourth-order solution supplies the local error
// estimate that controls the internal step size.
type dopri struct {
	f rateFunc
	t float64
	y []float64
	h float64

	tol      float64
	safety   float64
	minScale float64
	maxScale float64
	hMin     float64
	maxSteps int
}

func newDopri() *dopri {
	return &dopri{
		tol:      1e-6,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		hMin:     1e-13,
		maxSteps: 1_000_000,
	}
}

func (d *dopri) Reset(f rateFunc, t0 float64, y0 []float64) {
	d.f = f
	d.t = t0
	d.y = append([]float64(nil), y0...)
	d.h = 0
}

func (d *dopri) Time() float64    { return d.t }
func (d *dopri) State() []float64 { return d.y }

func (d *dopri) AdvanceTo(target float64) error {
	if d.h <= 0 {
		d.h = (target - d.t) / 10
	}
	for steps := 0; d.t < target; steps++ {
		if steps >= d.maxSteps {
			return fmt.Errorf("dopri5: step limit %d reached at t=%g", d.maxSteps, d.t)
		}

		h := d.h
		clamped := false
		if d.t+h >= target {
			h = target - d.t
			clamped = true
		}

		yNew, errRatio := d.attempt(h)
		if errRatio > 1 {
			scale := math.Max(d.minScale, d.safety*math.Pow(errRatio, -0.25))
			d.h = h * scale
			if d.h < d.hMin {
				return fmt.Errorf("dopri5: step size underflow at t=%g", d.t)
			}
			continue
		}

		d.y = yNew
		if clamped {
			d.t = target
		} else {
			d.t += h
		}

		if errRatio > 0 {
			d.h = h * math.Min(d.maxScale, d.safety*math.Pow(errRatio, -0.2))
		} else {
			d.h = h * d.maxScale
		}
	}
	return nil
}

// attempt takes a single trial step of size h from (t, y), returning the
// fifth-order solution and the error-to-tolerance ratio.
func (d *dopri) attempt(h float64) ([]float64, float64) {
	n := len(d.y)
	t, y := d.t, d.y

	eval := func(ts float64, ys []float64) []float64 {
		k := make([]float64, n)
		d.f(ts, ys, k)
		return k
	}

	k1 := eval(t, y)

	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		ys[i] = y[i] + h*b21*k1[i]
	}
	k2 := eval(t+a2*h, ys)

	for i := 0; i < n; i++ {
		ys[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := eval(t+a3*h, ys)

	for i := 0; i < n; i++ {
		ys[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := eval(t+a4*h, ys)

	for i := 0; i < n; i++ {
		ys[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := eval(t+a5*h, ys)

	for i := 0; i < n; i++ {
		ys[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := eval(t+h, ys)

	yNew := make([]float64, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := eval(t+h, yNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(y[i]) + math.Abs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return yNew, errMax / d.tol
}
