package trend

import (
	"fmt"

	"github.com/evdnx/gotix/indicator/core"
)

// Alligator line defaults: period and forward shift.
const (
	DefaultJawPeriod   = 13
	DefaultJawShift    = 8
	DefaultTeethPeriod = 8
	DefaultTeethShift  = 5
	DefaultLipsPeriod  = 5
	DefaultLipsShift   = 3
)

// WilliamsAlligator is three SMAs of the median price, each shifted forward by
// its own offset.
type WilliamsAlligator struct {
	lines [3]alligatorLine
}

type alligatorLine struct {
	period int
	shift  int
}

type AlligatorOutput struct {
	Jaw   []float64
	Teeth []float64
	Lips  []float64
}

func NewWilliamsAlligator() (*WilliamsAlligator, error) {
	return NewWilliamsAlligatorWithParams(
		DefaultJawPeriod, DefaultJawShift,
		DefaultTeethPeriod, DefaultTeethShift,
		DefaultLipsPeriod, DefaultLipsShift,
	)
}

// NewWilliamsAlligatorWithParams takes a (period, shift) pair per line. Shifts
// may be zero.
func NewWilliamsAlligatorWithParams(jawPeriod, jawShift, teethPeriod, teethShift, lipsPeriod, lipsShift int) (*WilliamsAlligator, error) {
	lines := [3]alligatorLine{{jawPeriod, jawShift}, {teethPeriod, teethShift}, {lipsPeriod, lipsShift}}
	names := [3]string{"jaw", "teeth", "lips"}
	for i, l := range lines {
		if err := core.RequirePeriod(names[i]+"_period", l.period); err != nil {
			return nil, err
		}
		if l.shift < 0 {
			return nil, fmt.Errorf("%w: %s_shift must be >= 0, got %d", core.ErrInvalidParameter, names[i], l.shift)
		}
	}
	return &WilliamsAlligator{lines: lines}, nil
}

func (a *WilliamsAlligator) Calculate(s core.Series) (AlligatorOutput, error) {
	median := s.MedianPrices()
	var out [3][]float64
	for i, l := range a.lines {
		sma, err := core.SMA(median, l.period)
		if err != nil {
			return AlligatorOutput{}, err
		}
		out[i] = core.Shift(sma, l.shift)
	}
	return AlligatorOutput{Jaw: out[0], Teeth: out[1], Lips: out[2]}, nil
}

func (a *WilliamsAlligator) Compute(s core.Series) (*core.Result, error) {
	out, err := a.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("alligator", s).
		Add("jaw", out.Jaw).
		Add("teeth", out.Teeth).
		Add("lips", out.Lips), nil
}
