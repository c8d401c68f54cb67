package trend

import (
	"fmt"
	"math"

	"github.com/evdnx/gotix/indicator/core"
)

const (
	DefaultSARInitialAF = 0.02
	DefaultSARIncrement = 0.02
	DefaultSARMaxAF     = 0.2
)

// Direction is the Parabolic SAR trend.
type Direction int

const (
	Bull Direction = iota
	Bear
)

func (d Direction) String() string {
	if d == Bear {
		return "bear"
	}
	return "bull"
}

// ParabolicSAR implements Wilder's Parabolic SAR (Stop and Reverse). The
// first two bars seed the recurrence: SAR equals their lows, the extreme
// point is the first high and the trend starts bullish.
type ParabolicSAR struct {
	initialAF float64
	increment float64
	maxAF     float64
}

// SAROutput exposes the stop level and the state behind it for every bar.
type SAROutput struct {
	SAR   []float64
	AF    []float64
	Trend []Direction
}

type sarState struct {
	sar   float64
	ep    float64
	af    float64
	trend Direction
}

// NewParabolicSAR creates a SAR calculator with AF 0.02, increment 0.02 and a
// 0.2 cap.
func NewParabolicSAR() (*ParabolicSAR, error) {
	return NewParabolicSARWithParams(DefaultSARInitialAF, DefaultSARIncrement, DefaultSARMaxAF)
}

// NewParabolicSARWithParams allows custom acceleration parameters.
func NewParabolicSARWithParams(initialAF, increment, maxAF float64) (*ParabolicSAR, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"initial_af", initialAF}, {"increment", increment}, {"max_af", maxAF}} {
		if err := core.RequirePositive(p.name, p.v); err != nil {
			return nil, err
		}
	}
	if initialAF > maxAF {
		return nil, fmt.Errorf("%w: initial_af %v must be <= max_af %v", core.ErrInvalidParameter, initialAF, maxAF)
	}
	return &ParabolicSAR{initialAF: initialAF, increment: increment, maxAF: maxAF}, nil
}

// Calculate runs the stop-and-reverse recurrence over the whole series.
func (p *ParabolicSAR) Calculate(s core.Series) (SAROutput, error) {
	n := s.Len()
	out := SAROutput{
		SAR:   make([]float64, n),
		AF:    make([]float64, n),
		Trend: make([]Direction, n),
	}
	if n == 0 {
		return out, nil
	}
	state := sarState{sar: s.Bar(0).Low, ep: s.Bar(0).High, af: p.initialAF, trend: Bull}
	out.record(0, state)
	if n > 1 {
		state.sar = s.Bar(1).Low
		out.record(1, state)
	}
	for i := 2; i < n; i++ {
		state = p.step(state, s.Bar(i), s.Bar(i-1), s.Bar(i-2))
		out.record(i, state)
	}
	return out, nil
}

// step advances the state by one bar given the current bar and the two before.
func (p *ParabolicSAR) step(prev sarState, cur, prev1, prev2 core.Bar) sarState {
	next := prev
	next.sar = prev.sar + prev.af*(prev.ep-prev.sar)

	// the stop may never enter the range of the two previous bars
	if prev.trend == Bull {
		next.sar = math.Min(next.sar, math.Min(prev1.Low, prev2.Low))
	} else {
		next.sar = math.Max(next.sar, math.Max(prev1.High, prev2.High))
	}

	switch {
	case prev.trend == Bull && cur.Low < next.sar:
		next.trend = Bear
		next.sar = prev.ep
		next.ep = cur.Low
		next.af = p.initialAF
	case prev.trend == Bear && cur.High > next.sar:
		next.trend = Bull
		next.sar = prev.ep
		next.ep = cur.High
		next.af = p.initialAF
	case prev.trend == Bull && cur.High > prev.ep:
		next.ep = cur.High
		next.af = math.Min(prev.af+p.increment, p.maxAF)
	case prev.trend == Bear && cur.Low < prev.ep:
		next.ep = cur.Low
		next.af = math.Min(prev.af+p.increment, p.maxAF)
	}
	return next
}

func (o *SAROutput) record(i int, st sarState) {
	o.SAR[i] = st.sar
	o.AF[i] = st.af
	o.Trend[i] = st.trend
}

// Compute wraps Calculate into a Result with the single output "sar".
func (p *ParabolicSAR) Compute(s core.Series) (*core.Result, error) {
	out, err := p.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("parabolic_sar", s).Add("sar", out.SAR), nil
}
