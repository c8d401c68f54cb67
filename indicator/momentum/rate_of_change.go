package momentum

import "github.com/evdnx/gotix/indicator/core"

const DefaultROCPeriod = 10

// RateOfChange is the percentage change of the close over period bars.
type RateOfChange struct {
	period int
}

func NewRateOfChange() (*RateOfChange, error) {
	return NewRateOfChangeWithParams(DefaultROCPeriod)
}

func NewRateOfChangeWithParams(period int) (*RateOfChange, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &RateOfChange{period: period}, nil
}

func (r *RateOfChange) Calculate(s core.Series) ([]float64, error) {
	closes := s.Closes()
	base := core.Shift(closes, r.period)
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = 100 * core.Ratio(closes[i]-base[i], base[i])
	}
	return out, nil
}

func (r *RateOfChange) Compute(s core.Series) (*core.Result, error) {
	values, err := r.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("roc", s).Add("roc", values), nil
}
