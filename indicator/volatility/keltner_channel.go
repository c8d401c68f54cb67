package volatility

import "github.com/evdnx/gotix/indicator/core"

const (
	DefaultKeltnerPeriod     = 20
	DefaultKeltnerATRPeriod  = 10
	DefaultKeltnerMultiplier = 2.0
)

// KeltnerChannel surrounds a standard EMA of closes with ATR-scaled bands.
type KeltnerChannel struct {
	period     int
	multiplier float64
	atr        *AverageTrueRange
}

// KeltnerOutput holds the channel lines.
type KeltnerOutput struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// NewKeltnerChannel creates a channel with period 20, ATR period 10 and
// multiplier 2.
func NewKeltnerChannel() (*KeltnerChannel, error) {
	return NewKeltnerChannelWithParams(DefaultKeltnerPeriod, DefaultKeltnerATRPeriod, DefaultKeltnerMultiplier)
}

// NewKeltnerChannelWithParams validates all three parameters.
func NewKeltnerChannelWithParams(period, atrPeriod int, multiplier float64) (*KeltnerChannel, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	if err := core.RequirePositive("multiplier", multiplier); err != nil {
		return nil, err
	}
	atr, err := NewAverageTrueRangeWithParams(atrPeriod)
	if err != nil {
		return nil, err
	}
	return &KeltnerChannel{period: period, multiplier: multiplier, atr: atr}, nil
}

func (k *KeltnerChannel) Calculate(s core.Series) (KeltnerOutput, error) {
	middle, err := core.EMA(s.Closes(), k.period, core.Standard)
	if err != nil {
		return KeltnerOutput{}, err
	}
	atr, err := k.atr.Calculate(s)
	if err != nil {
		return KeltnerOutput{}, err
	}
	return KeltnerOutput{
		Middle: middle,
		Upper:  core.Zip(middle, atr, func(m, a float64) float64 { return m + k.multiplier*a }),
		Lower:  core.Zip(middle, atr, func(m, a float64) float64 { return m - k.multiplier*a }),
	}, nil
}

func (k *KeltnerChannel) Compute(s core.Series) (*core.Result, error) {
	out, err := k.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("keltner", s).
		Add("middle", out.Middle).
		Add("upper", out.Upper).
		Add("lower", out.Lower), nil
}
