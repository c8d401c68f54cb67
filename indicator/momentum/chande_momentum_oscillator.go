package momentum

import "github.com/evdnx/gotix/indicator/core"

const DefaultCMOPeriod = 14

// ChandeMomentumOscillator is 100·(ΣUp-ΣDown)/(ΣUp+ΣDown) over the last period
// close-to-close changes. The first change is at index 1, so the first value
// is at index period.
type ChandeMomentumOscillator struct {
	period int
}

func NewChandeMomentumOscillator() (*ChandeMomentumOscillator, error) {
	return NewChandeMomentumOscillatorWithParams(DefaultCMOPeriod)
}

func NewChandeMomentumOscillatorWithParams(period int) (*ChandeMomentumOscillator, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &ChandeMomentumOscillator{period: period}, nil
}

func (c *ChandeMomentumOscillator) Calculate(s core.Series) ([]float64, error) {
	gains, losses := gainsLosses(s.Closes())
	up, err := core.RollingSum(gains, c.period)
	if err != nil {
		return nil, err
	}
	down, err := core.RollingSum(losses, c.period)
	if err != nil {
		return nil, err
	}
	return core.Zip(up, down, func(u, d float64) float64 { return 100 * core.Ratio(u-d, u+d) }), nil
}

func (c *ChandeMomentumOscillator) Compute(s core.Series) (*core.Result, error) {
	values, err := c.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("cmo", s).Add("cmo", values), nil
}
