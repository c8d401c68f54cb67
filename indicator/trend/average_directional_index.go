package trend

import (
	"math"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/indicator/volatility"
)

const DefaultADXPeriod = 14

// AverageDirectionalIndex computes Wilder's +DI, -DI and ADX.
type AverageDirectionalIndex struct {
	period int
}

// ADXOutput holds the three aligned lines.
type ADXOutput struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

func NewAverageDirectionalIndex() (*AverageDirectionalIndex, error) {
	return NewAverageDirectionalIndexWithParams(DefaultADXPeriod)
}

func NewAverageDirectionalIndexWithParams(period int) (*AverageDirectionalIndex, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &AverageDirectionalIndex{period: period}, nil
}

// DirectionalMovement returns +DM and -DM per bar. Only the larger positive
// move counts; both are zero on the first bar.
func DirectionalMovement(s core.Series) (plus, minus []float64) {
	plus = make([]float64, s.Len())
	minus = make([]float64, s.Len())
	for i := 1; i < s.Len(); i++ {
		up := s.Bar(i).High - s.Bar(i-1).High
		down := s.Bar(i-1).Low - s.Bar(i).Low
		if up > down && up > 0 {
			plus[i] = up
		}
		if down > up && down > 0 {
			minus[i] = down
		}
	}
	return plus, minus
}

// Calculate smooths +DM, -DM and true range with the Wilder EMA. DX is
// undefined where +DI + -DI is zero, and that gap carries into ADX.
func (a *AverageDirectionalIndex) Calculate(s core.Series) (ADXOutput, error) {
	plusDM, minusDM := DirectionalMovement(s)
	smoothed := make([][]float64, 0, 3)
	for _, in := range [][]float64{plusDM, minusDM, volatility.TrueRange(s)} {
		v, err := core.EMA(in, a.period, core.Wilder)
		if err != nil {
			return ADXOutput{}, err
		}
		smoothed = append(smoothed, v)
	}
	tr := smoothed[2]
	plusDI := core.Zip(smoothed[0], tr, func(dm, r float64) float64 { return 100 * core.Ratio(dm, r) })
	minusDI := core.Zip(smoothed[1], tr, func(dm, r float64) float64 { return 100 * core.Ratio(dm, r) })
	dx := core.Zip(plusDI, minusDI, func(p, m float64) float64 {
		return 100 * core.Ratio(math.Abs(p-m), p+m)
	})
	adx, err := core.EMA(dx, a.period, core.Wilder)
	if err != nil {
		return ADXOutput{}, err
	}
	return ADXOutput{ADX: adx, PlusDI: plusDI, MinusDI: minusDI}, nil
}

func (a *AverageDirectionalIndex) Compute(s core.Series) (*core.Result, error) {
	out, err := a.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("adx", s).
		Add("adx", out.ADX).
		Add("plus_di", out.PlusDI).
		Add("minus_di", out.MinusDI), nil
}
