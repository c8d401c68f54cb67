package momentum

import (
	"math"

	"github.com/evdnx/gotix/indicator/core"
)

const DefaultRSIPeriod = 14

// RelativeStrengthIndex is Wilder's RSI. Gains and losses start at the second
// bar and are smoothed with the Wilder EMA; values before index period are
// undefined.
type RelativeStrengthIndex struct {
	period int
}

func NewRelativeStrengthIndex() (*RelativeStrengthIndex, error) {
	return NewRelativeStrengthIndexWithParams(DefaultRSIPeriod)
}

func NewRelativeStrengthIndexWithParams(period int) (*RelativeStrengthIndex, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &RelativeStrengthIndex{period: period}, nil
}

// gainsLosses splits close-to-close changes; position 0 is undefined.
func gainsLosses(closes []float64) (gains, losses []float64) {
	diff := core.Diff(closes)
	gains = core.Map(diff, func(d float64) float64 { return math.Max(d, 0) })
	losses = core.Map(diff, func(d float64) float64 { return math.Max(-d, 0) })
	return gains, losses
}

func (r *RelativeStrengthIndex) Calculate(s core.Series) ([]float64, error) {
	gains, losses := gainsLosses(s.Closes())
	avgGain, err := core.EMA(gains, r.period, core.Wilder)
	if err != nil {
		return nil, err
	}
	avgLoss, err := core.EMA(losses, r.period, core.Wilder)
	if err != nil {
		return nil, err
	}
	out := core.NewUndefined(s.Len())
	for i := r.period; i < s.Len(); i++ {
		out[i] = rsiValue(avgGain[i], avgLoss[i])
	}
	return out, nil
}

// rsiValue maps average gain and loss to [0, 100]. No losses at all gives 100;
// a flat window (no gains, no losses) is undefined.
func rsiValue(gain, loss float64) float64 {
	switch {
	case core.IsUndefined(gain) || core.IsUndefined(loss):
		return core.Undefined()
	case loss == 0 && gain == 0:
		return core.Undefined()
	case loss == 0:
		return 100
	default:
		return 100 - 100/(1+gain/loss)
	}
}

func (r *RelativeStrengthIndex) Compute(s core.Series) (*core.Result, error) {
	values, err := r.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("rsi", s).Add("rsi", values), nil
}
