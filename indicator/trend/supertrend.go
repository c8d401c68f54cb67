package trend

import (
	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/indicator/volatility"
)

const (
	DefaultSupertrendATRPeriod  = 10
	DefaultSupertrendMultiplier = 3.0
)

// Bound identifies which Supertrend band is active.
type Bound int

const (
	// BoundUpper: price is below the upper band (bearish regime).
	BoundUpper Bound = iota
	// BoundLower: price is above the lower band (bullish regime).
	BoundLower
)

func (b Bound) String() string {
	if b == BoundLower {
		return "lower"
	}
	return "upper"
}

// Supertrend is an ATR band indicator whose bands only tighten while price
// stays on the same side of them.
type Supertrend struct {
	multiplier float64
	atr        *volatility.AverageTrueRange
}

// SupertrendOutput holds the per-bar result. Supertrend is the band of the
// active state.
type SupertrendOutput struct {
	Supertrend []float64
	FinalUpper []float64
	FinalLower []float64
	Trend      []Bound
}

// supertrendState is the value threaded from one bar to the next.
type supertrendState struct {
	finalUpper float64
	finalLower float64
	trend      Bound
}

// NewSupertrend uses ATR period 10 and multiplier 3.
func NewSupertrend() (*Supertrend, error) {
	return NewSupertrendWithParams(DefaultSupertrendATRPeriod, DefaultSupertrendMultiplier)
}

func NewSupertrendWithParams(atrPeriod int, multiplier float64) (*Supertrend, error) {
	if err := core.RequirePeriod("atr_period", atrPeriod); err != nil {
		return nil, err
	}
	if err := core.RequirePositive("multiplier", multiplier); err != nil {
		return nil, err
	}
	atr, err := volatility.NewAverageTrueRangeWithParams(atrPeriod)
	if err != nil {
		return nil, err
	}
	return &Supertrend{multiplier: multiplier, atr: atr}, nil
}

// Calculate runs the band recurrence in a single left-to-right pass.
func (st *Supertrend) Calculate(s core.Series) (SupertrendOutput, error) {
	n := s.Len()
	out := SupertrendOutput{
		Supertrend: make([]float64, n),
		FinalUpper: make([]float64, n),
		FinalLower: make([]float64, n),
		Trend:      make([]Bound, n),
	}
	if n == 0 {
		return out, nil
	}
	atr, err := st.atr.Calculate(s)
	if err != nil {
		return SupertrendOutput{}, err
	}

	basicUpper := func(i int) float64 { return s.Bar(i).MedianPrice() + st.multiplier*atr[i] }
	basicLower := func(i int) float64 { return s.Bar(i).MedianPrice() - st.multiplier*atr[i] }

	state := supertrendState{finalUpper: basicUpper(0), finalLower: basicLower(0)}
	if s.Bar(0).Close > state.finalLower {
		state.trend = BoundLower
	} else {
		state.trend = BoundUpper
	}
	out.record(0, state)

	for i := 1; i < n; i++ {
		state = state.next(s.Bar(i-1).Close, s.Bar(i).Close, basicUpper(i), basicLower(i))
		out.record(i, state)
	}
	return out, nil
}

// next derives the state at bar t from the state at t-1. prevClose is
// close[t-1]; close and the basic bands belong to bar t.
func (prev supertrendState) next(prevClose, close, basicUpper, basicLower float64) supertrendState {
	cur := supertrendState{finalUpper: basicUpper, finalLower: basicLower}
	if prevClose <= prev.finalUpper {
		cur.finalUpper = min(basicUpper, prev.finalUpper)
	}
	if prevClose >= prev.finalLower {
		cur.finalLower = max(basicLower, prev.finalLower)
	}

	switch {
	case prev.trend == BoundUpper && close <= cur.finalUpper:
		cur.trend = BoundUpper
	case prev.trend == BoundUpper && close > cur.finalUpper:
		cur.trend = BoundLower
	case prev.trend == BoundLower && close >= cur.finalLower:
		cur.trend = BoundLower
	default:
		cur.trend = BoundUpper
	}
	return cur
}

func (o *SupertrendOutput) record(i int, st supertrendState) {
	o.FinalUpper[i] = st.finalUpper
	o.FinalLower[i] = st.finalLower
	o.Trend[i] = st.trend
	if st.trend == BoundUpper {
		o.Supertrend[i] = st.finalUpper
	} else {
		o.Supertrend[i] = st.finalLower
	}
}

// Compute wraps Calculate into a Result with outputs supertrend, final_upper
// and final_lower.
func (st *Supertrend) Compute(s core.Series) (*core.Result, error) {
	out, err := st.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("supertrend", s).
		Add("supertrend", out.Supertrend).
		Add("final_upper", out.FinalUpper).
		Add("final_lower", out.FinalLower), nil
}
