package trend

import "github.com/evdnx/gotix/indicator/core"

const DefaultAroonPeriod = 25

// AroonOscillator measures how recently the window high and low occurred.
// Each window spans period+1 bars; an offset of 0 is the oldest bar, so a high
// on the current bar scores 100.
type AroonOscillator struct {
	period int
}

type AroonOutput struct {
	Up         []float64
	Down       []float64
	Oscillator []float64
}

func NewAroonOscillator() (*AroonOscillator, error) {
	return NewAroonOscillatorWithParams(DefaultAroonPeriod)
}

func NewAroonOscillatorWithParams(period int) (*AroonOscillator, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &AroonOscillator{period: period}, nil
}

func (a *AroonOscillator) Calculate(s core.Series) (AroonOutput, error) {
	argMax, err := core.RollingArgMax(s.Highs(), a.period+1)
	if err != nil {
		return AroonOutput{}, err
	}
	argMin, err := core.RollingArgMin(s.Lows(), a.period+1)
	if err != nil {
		return AroonOutput{}, err
	}
	scale := func(off float64) float64 { return 100 * off / float64(a.period) }
	up := core.Map(argMax, scale)
	down := core.Map(argMin, scale)
	return AroonOutput{
		Up:         up,
		Down:       down,
		Oscillator: core.Zip(up, down, func(u, d float64) float64 { return u - d }),
	}, nil
}

func (a *AroonOscillator) Compute(s core.Series) (*core.Result, error) {
	out, err := a.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("aroon", s).Add("aroon", out.Oscillator), nil
}
