package volatility

import (
	"github.com/evdnx/gotix/indicator/core"
)

const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
)

// BollingerBands calculates upper/middle/lower bands from a simple moving
// average and the population standard deviation of closing prices.
type BollingerBands struct {
	period     int
	multiplier float64
}

// BollingerOutput holds the three aligned bands.
type BollingerOutput struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// NewBollingerBands creates a Bollinger Bands calculator with default settings.
func NewBollingerBands() (*BollingerBands, error) {
	return NewBollingerBandsWithParams(DefaultBollingerPeriod, DefaultBollingerMultiplier)
}

// NewBollingerBandsWithParams creates a Bollinger Bands calculator with custom
// period and multiplier.
func NewBollingerBandsWithParams(period int, multiplier float64) (*BollingerBands, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	if err := core.RequirePositive("multiplier", multiplier); err != nil {
		return nil, err
	}
	return &BollingerBands{period: period, multiplier: multiplier}, nil
}

// Calculate evaluates the bands over the series closes.
func (b *BollingerBands) Calculate(s core.Series) (BollingerOutput, error) {
	closes := s.Closes()
	middle, err := core.SMA(closes, b.period)
	if err != nil {
		return BollingerOutput{}, err
	}
	std, err := core.RollingStdDev(closes, b.period)
	if err != nil {
		return BollingerOutput{}, err
	}
	return BollingerOutput{
		Middle: middle,
		Upper:  core.Zip(middle, std, func(m, d float64) float64 { return m + b.multiplier*d }),
		Lower:  core.Zip(middle, std, func(m, d float64) float64 { return m - b.multiplier*d }),
	}, nil
}

// Compute wraps Calculate into a Result with outputs middle, upper and lower.
func (b *BollingerBands) Compute(s core.Series) (*core.Result, error) {
	out, err := b.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("bollinger", s).
		Add("middle", out.Middle).
		Add("upper", out.Upper).
		Add("lower", out.Lower), nil
}
