package volatility

import "github.com/evdnx/gotix/indicator/core"

const DefaultDonchianPeriod = 20

// DonchianChannel tracks the highest high and lowest low of a trailing window.
type DonchianChannel struct {
	period int
}

// DonchianOutput holds the channel lines. Middle is the midpoint of the two.
type DonchianOutput struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// NewDonchianChannel uses the default 20-bar window.
func NewDonchianChannel() (*DonchianChannel, error) {
	return NewDonchianChannelWithParams(DefaultDonchianPeriod)
}

func NewDonchianChannelWithParams(period int) (*DonchianChannel, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &DonchianChannel{period: period}, nil
}

func (d *DonchianChannel) Calculate(s core.Series) (DonchianOutput, error) {
	upper, err := core.RollingMax(s.Highs(), d.period)
	if err != nil {
		return DonchianOutput{}, err
	}
	lower, err := core.RollingMin(s.Lows(), d.period)
	if err != nil {
		return DonchianOutput{}, err
	}
	middle := core.Zip(upper, lower, func(u, l float64) float64 { return (u + l) / 2 })
	return DonchianOutput{Upper: upper, Middle: middle, Lower: lower}, nil
}

func (d *DonchianChannel) Compute(s core.Series) (*core.Result, error) {
	out, err := d.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("donchian", s).
		Add("upper", out.Upper).
		Add("middle", out.Middle).
		Add("lower", out.Lower), nil
}
