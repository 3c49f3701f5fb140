package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// bdf is an implicit backward-differentiation stepper behind the
// variableStep protocol: first order (backward Euler) on startup and after
// any step-size change, second order once two equally spaced history points
// exist. Each implicit step is solved by Newton iteration with a
// finite-difference Jacobian. The internal step is controlled by the
// distance between the explicit predictor and the implicit corrector:
// halved when the step is rejected or Newton stalls, doubled after a run of
// comfortably accepted steps. Halving and doubling keep the history
// spacing simple; any step-size change restarts at first order.
type bdf struct {
	f     rateFunc
	t     float64
	y     []float64
	yPrev []float64
	// histStep is the size of the step that produced yPrev; the two-step
	// formula requires the next step to match it.
	histStep float64

	h         float64
	hMin      float64
	growAfter int
	streak    int

	relTol     float64
	absTol     float64
	newtonTol  float64
	maxNewton  int
	maxSteps   int
	jacEpsilon float64
}

func newBDF() *bdf {
	return &bdf{
		hMin:       1e-13,
		growAfter:  6,
		relTol:     1e-3,
		absTol:     1e-8,
		newtonTol:  1e-9,
		maxNewton:  8,
		maxSteps:   10_000_000,
		jacEpsilon: 1e-8,
	}
}

func (b *bdf) Reset(f rateFunc, t0 float64, y0 []float64) {
	b.f = f
	b.t = t0
	b.y = append([]float64(nil), y0...)
	b.yPrev = nil
	b.histStep = 0
	b.h = 0
	b.streak = 0
}

func (b *bdf) Time() float64    { return b.t }
func (b *bdf) State() []float64 { return b.y }

func (b *bdf) AdvanceTo(target float64) error {
	if b.h <= 0 {
		b.h = (target - b.t) / 10
	}
	for steps := 0; b.t < target; steps++ {
		if steps >= b.maxSteps {
			return fmt.Errorf("bdf: step limit %d reached at t=%g", b.maxSteps, b.t)
		}

		h := b.h
		clamped := false
		if b.t+h >= target {
			h = target - b.t
			clamped = true
		}

		yNew, dist, err := b.implicitStep(h)
		if err != nil || dist > 1 {
			b.h /= 2
			b.yPrev = nil
			b.streak = 0
			if b.h < b.hMin {
				if err == nil {
					err = fmt.Errorf("local error stays above tolerance")
				}
				return fmt.Errorf("bdf: step size underflow at t=%g: %v", b.t, err)
			}
			continue
		}

		b.yPrev = b.y
		b.histStep = h
		b.y = yNew
		if clamped {
			b.t = target
		} else {
			b.t += h
		}

		if dist < 0.1 {
			b.streak++
		} else {
			b.streak = 0
		}
		if b.streak >= b.growAfter && !clamped {
			b.h = h * 2
			b.yPrev = nil
			b.streak = 0
		}
	}
	return nil
}

// implicitStep solves the BDF residual for the state at t+h. With history
// at spacing h the two-step formula
//
//	y - (4/3)y_n + (1/3)y_{n-1} - (2/3)h f(t+h, y) = 0
//
// applies; otherwise backward Euler y - y_n - h f(t+h, y) = 0. The second
// return value is the predictor-corrector distance in tolerance-weighted
// units; values above 1 mean the step must shrink.
func (b *bdf) implicitStep(h float64) ([]float64, float64, error) {
	n := len(b.y)
	tNew := b.t + h

	var rhs []float64
	var c float64
	if b.yPrev != nil && b.histStep == h {
		c = 2.0 / 3.0
		rhs = make([]float64, n)
		for i := 0; i < n; i++ {
			rhs[i] = (4.0*b.y[i] - b.yPrev[i]) / 3.0
		}
	} else {
		c = 1.0
		rhs = append([]float64(nil), b.y...)
	}

	// Predictor: explicit Euler from the current state.
	fy := make([]float64, n)
	b.f(b.t, b.y, fy)
	pred := make([]float64, n)
	for i := 0; i < n; i++ {
		pred[i] = b.y[i] + h*fy[i]
	}
	y := append([]float64(nil), pred...)

	jac := b.jacobian(tNew, y)
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -c * h * jac.At(i, j)
			if i == j {
				v += 1
			}
			A.Set(i, j, v)
		}
	}
	var lu mat.LU
	lu.Factorize(A)

	g := mat.NewVecDense(n, nil)
	dy := mat.NewVecDense(n, nil)
	fNew := make([]float64, n)
	converged := false

	for iter := 0; iter < b.maxNewton; iter++ {
		b.f(tNew, y, fNew)
		for i := 0; i < n; i++ {
			g.SetVec(i, y[i]-rhs[i]-c*h*fNew[i])
		}

		if err := lu.SolveVecTo(dy, false, g); err != nil {
			return nil, 0, fmt.Errorf("singular iteration matrix: %v", err)
		}

		corr := 0.0
		scale := 1.0
		for i := 0; i < n; i++ {
			y[i] -= dy.AtVec(i)
			corr += dy.AtVec(i) * dy.AtVec(i)
			scale += y[i] * y[i]
		}
		if !validSlice(y) {
			return nil, 0, fmt.Errorf("iterate diverged (NaN/Inf)")
		}
		if math.Sqrt(corr) <= b.newtonTol*math.Sqrt(scale) {
			converged = true
			break
		}
	}
	if !converged {
		return nil, 0, fmt.Errorf("no convergence in %d newton iterations", b.maxNewton)
	}

	dist := 0.0
	for i := 0; i < n; i++ {
		w := b.absTol + b.relTol*math.Abs(y[i])
		dist = math.Max(dist, math.Abs(y[i]-pred[i])/w)
	}

	return y, dist, nil
}

// jacobian approximates df/dy at (t, y) by forward differences.
func (b *bdf) jacobian(t float64, y []float64) *mat.Dense {
	n := len(y)
	f0 := make([]float64, n)
	b.f(t, y, f0)

	jac := mat.NewDense(n, n, nil)
	yp := append([]float64(nil), y...)
	fp := make([]float64, n)

	for j := 0; j < n; j++ {
		delta := b.jacEpsilon * math.Max(1, math.Abs(y[j]))
		yp[j] = y[j] + delta
		b.f(t, yp, fp)
		for i := 0; i < n; i++ {
			jac.Set(i, j, (fp[i]-f0[i])/delta)
		}
		yp[j] = y[j]
	}
	return jac
}

func validSlice(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
