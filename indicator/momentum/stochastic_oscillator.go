package momentum

import "github.com/evdnx/gotix/indicator/core"

const (
	DefaultStochasticKPeriod = 14
	DefaultStochasticDPeriod = 3
)

// StochasticOscillator computes %K (position of the close inside the trailing
// high/low range) and %D (SMA of %K). A zero range leaves %K undefined.
type StochasticOscillator struct {
	kPeriod int
	dPeriod int
}

type StochasticOutput struct {
	K []float64
	D []float64
}

func NewStochasticOscillator() (*StochasticOscillator, error) {
	return NewStochasticOscillatorWithParams(DefaultStochasticKPeriod, DefaultStochasticDPeriod)
}

func NewStochasticOscillatorWithParams(kPeriod, dPeriod int) (*StochasticOscillator, error) {
	if err := core.RequirePeriod("k_period", kPeriod); err != nil {
		return nil, err
	}
	if err := core.RequirePeriod("d_period", dPeriod); err != nil {
		return nil, err
	}
	return &StochasticOscillator{kPeriod: kPeriod, dPeriod: dPeriod}, nil
}

// highLowWindow returns the trailing highest high, lowest low and the closes.
func highLowWindow(s core.Series, period int) ([]float64, []float64, []float64, error) {
	hh, err := core.RollingMax(s.Highs(), period)
	if err != nil {
		return nil, nil, nil, err
	}
	ll, err := core.RollingMin(s.Lows(), period)
	if err != nil {
		return nil, nil, nil, err
	}
	return hh, ll, s.Closes(), nil
}

func (so *StochasticOscillator) Calculate(s core.Series) (StochasticOutput, error) {
	hh, ll, closes, err := highLowWindow(s, so.kPeriod)
	if err != nil {
		return StochasticOutput{}, err
	}
	k := make([]float64, s.Len())
	for i := range k {
		k[i] = 100 * core.Ratio(closes[i]-ll[i], hh[i]-ll[i])
	}
	d, err := core.SMA(k, so.dPeriod)
	if err != nil {
		return StochasticOutput{}, err
	}
	return StochasticOutput{K: k, D: d}, nil
}

func (so *StochasticOscillator) Compute(s core.Series) (*core.Result, error) {
	out, err := so.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("stochastic", s).Add("k", out.K).Add("d", out.D), nil
}
