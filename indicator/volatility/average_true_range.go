package volatility

import (
	"math"

	"github.com/evdnx/gotix/indicator/core"
)

const DefaultATRPeriod = 14

// TrueRange returns max(|h-l|, |h-prevClose|, |l-prevClose|) per bar. The
// first bar has no previous close, so its true range is high-low.
func TrueRange(s core.Series) []float64 {
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		tr := b.High - b.Low
		if i > 0 {
			prev := s.Bar(i - 1).Close
			tr = math.Max(tr, math.Max(math.Abs(b.High-prev), math.Abs(b.Low-prev)))
		}
		out[i] = tr
	}
	return out
}

// AverageTrueRange is the Wilder-smoothed true range.
type AverageTrueRange struct {
	period int
}

// NewAverageTrueRange creates an ATR calculator with the default period (14).
func NewAverageTrueRange() (*AverageTrueRange, error) {
	return NewAverageTrueRangeWithParams(DefaultATRPeriod)
}

// NewAverageTrueRangeWithParams creates an ATR calculator with a custom period.
func NewAverageTrueRangeWithParams(period int) (*AverageTrueRange, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &AverageTrueRange{period: period}, nil
}

// Period returns the smoothing period.
func (atr *AverageTrueRange) Period() int { return atr.period }

// Calculate returns one ATR value per bar. The recurrence is seeded by the
// first true range, so every position is defined.
func (atr *AverageTrueRange) Calculate(s core.Series) ([]float64, error) {
	return core.EMA(TrueRange(s), atr.period, core.Wilder)
}

// Compute wraps Calculate into a Result with the single output "atr".
func (atr *AverageTrueRange) Compute(s core.Series) (*core.Result, error) {
	values, err := atr.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("atr", s).Add("atr", values), nil
}
