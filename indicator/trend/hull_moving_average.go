package trend

import (
	"math"

	"github.com/evdnx/gotix/indicator/core"
)

const DefaultHMAPeriod = 9

// HullMovingAverage calculates the Hull Moving Average (HMA):
// WMA(2·WMA(close, n/2) − WMA(close, n), √n).
type HullMovingAverage struct {
	period int
}

// HMAOutput holds the average and its crossover signals against price.
type HMAOutput struct {
	HMA     []float64
	Signals []float64
}

// NewHullMovingAverage initializes with the standard period (9)
func NewHullMovingAverage() (*HullMovingAverage, error) {
	return NewHullMovingAverageWithParams(DefaultHMAPeriod)
}

// NewHullMovingAverageWithParams initializes with a custom period
func NewHullMovingAverageWithParams(period int) (*HullMovingAverage, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &HullMovingAverage{period: period}, nil
}

func (hma *HullMovingAverage) Calculate(s core.Series) (HMAOutput, error) {
	closes := s.Closes()
	half := max(hma.period/2, 1)
	root := max(int(math.Sqrt(float64(hma.period))), 1)

	wmaFull, err := core.WMA(closes, hma.period)
	if err != nil {
		return HMAOutput{}, err
	}
	wmaHalf, err := core.WMA(closes, half)
	if err != nil {
		return HMAOutput{}, err
	}
	raw := core.Zip(wmaHalf, wmaFull, func(h, f float64) float64 { return 2*h - f })
	values, err := core.WMA(raw, root)
	if err != nil {
		return HMAOutput{}, err
	}
	return HMAOutput{HMA: values, Signals: crossSignals(closes, values)}, nil
}

// crossSignals marks price crossing the average:
//
//	 1  → bullish crossover
//	-1  → bearish crossover
//	 0  → no signal
//
// Positions where either bar is undefined are undefined.
func crossSignals(price, avg []float64) []float64 {
	out := core.NewUndefined(len(price))
	for i := 1; i < len(price); i++ {
		if core.IsUndefined(avg[i-1]) || core.IsUndefined(avg[i]) {
			continue
		}
		switch {
		case price[i-1] <= avg[i-1] && price[i] > avg[i]:
			out[i] = 1
		case price[i-1] >= avg[i-1] && price[i] < avg[i]:
			out[i] = -1
		default:
			out[i] = 0
		}
	}
	return out
}

func (hma *HullMovingAverage) Compute(s core.Series) (*core.Result, error) {
	out, err := hma.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("hma", s).
		Add("hma", out.HMA).
		Add("signal", out.Signals), nil
}
