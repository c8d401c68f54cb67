package momentum

import "github.com/evdnx/gotix/indicator/core"

const DefaultWilliamsRPeriod = 14

// WilliamsR is -100·(HH-close)/(HH-LL), in [-100, 0].
type WilliamsR struct {
	period int
}

func NewWilliamsR() (*WilliamsR, error) {
	return NewWilliamsRWithParams(DefaultWilliamsRPeriod)
}

func NewWilliamsRWithParams(period int) (*WilliamsR, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &WilliamsR{period: period}, nil
}

func (w *WilliamsR) Calculate(s core.Series) ([]float64, error) {
	hh, ll, closes, err := highLowWindow(s, w.period)
	if err != nil {
		return nil, err
	}
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = -100 * core.Ratio(hh[i]-closes[i], hh[i]-ll[i])
	}
	return out, nil
}

func (w *WilliamsR) Compute(s core.Series) (*core.Result, error) {
	values, err := w.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("williams_r", s).Add("williams_r", values), nil
}
