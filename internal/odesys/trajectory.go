package odesys

// Trajectory is the output of an integration run: sampled time points and,
// per state index, a series of values aligned with those time points.
// len(Times) == len(Series[i]) holds for every i.
type Trajectory struct {
	Times  []float64
	Series [][]float64
}

func NewTrajectory(states int) *Trajectory {
	return &Trajectory{
		Times:  make([]float64, 0),
		Series: make([][]float64, states),
	}
}

// Append records one sample: the time point plus the current value of every
// state entry. states must have len(Series) entries.
func (tr *Trajectory) Append(t float64, states State) {
	tr.Times = append(tr.Times, t)
	for i := range tr.Series {
		tr.Series[i] = append(tr.Series[i], states[i])
	}
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns the i-th sampled time and state.
func (tr *Trajectory) At(i int) (float64, State) {
	s := make(State, len(tr.Series))
	for j := range tr.Series {
		s[j] = tr.Series[j][i]
	}
	return tr.Times[i], s
}

// Final returns the last sampled time and state, or ok=false for an empty
// trajectory.
func (tr *Trajectory) Final() (float64, State, bool) {
	if tr.Len() == 0 {
		return 0, nil, false
	}
	t, s := tr.At(tr.Len() - 1)
	return t, s, true
}
