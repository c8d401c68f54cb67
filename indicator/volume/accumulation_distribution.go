package volume

import "github.com/evdnx/gotix/indicator/core"

const DefaultCMFPeriod = 20

// CloseLocationValue is ((c-l)-(h-c))/(h-l) per bar, in [-1, 1]. Bars with no
// range score 0.
func CloseLocationValue(s core.Series) []float64 {
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		if rng := b.High - b.Low; rng != 0 {
			out[i] = ((b.Close - b.Low) - (b.High - b.Close)) / rng
		}
	}
	return out
}

// moneyFlowVolume is CLV scaled by volume.
func moneyFlowVolume(s core.Series) []float64 {
	return core.Zip(CloseLocationValue(s), s.Volumes(), func(c, v float64) float64 { return c * v })
}

// AccumulationDistribution is the running total of money flow volume.
type AccumulationDistribution struct{}

func NewAccumulationDistribution() *AccumulationDistribution { return &AccumulationDistribution{} }

func (AccumulationDistribution) Calculate(s core.Series) []float64 {
	out := moneyFlowVolume(s)
	for i := 1; i < len(out); i++ {
		out[i] += out[i-1]
	}
	return out
}

func (a AccumulationDistribution) Compute(s core.Series) (*core.Result, error) {
	return core.NewSeriesResult("adl", s).Add("adl", a.Calculate(s)), nil
}

// ChaikinMoneyFlow is Σ(money flow volume)/Σ(volume) over a trailing window.
type ChaikinMoneyFlow struct {
	period int
}

func NewChaikinMoneyFlow() (*ChaikinMoneyFlow, error) {
	return NewChaikinMoneyFlowWithParams(DefaultCMFPeriod)
}

func NewChaikinMoneyFlowWithParams(period int) (*ChaikinMoneyFlow, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &ChaikinMoneyFlow{period: period}, nil
}

// Calculate leaves windows without any volume undefined.
func (c *ChaikinMoneyFlow) Calculate(s core.Series) ([]float64, error) {
	num, err := core.RollingSum(moneyFlowVolume(s), c.period)
	if err != nil {
		return nil, err
	}
	den, err := core.RollingSum(s.Volumes(), c.period)
	if err != nil {
		return nil, err
	}
	return core.Zip(num, den, core.Ratio), nil
}

func (c *ChaikinMoneyFlow) Compute(s core.Series) (*core.Result, error) {
	values, err := c.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("cmf", s).Add("cmf", values), nil
}
