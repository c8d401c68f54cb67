package momentum

import "github.com/evdnx/gotix/indicator/core"

const (
	DefaultCCIPeriod = 20
	// cciScale is Lambert's constant, chosen so most values land in ±100.
	cciScale = 0.015
)

// CommodityChannelIndex measures the typical price's distance from its SMA in
// units of mean absolute deviation.
type CommodityChannelIndex struct {
	period int
}

func NewCommodityChannelIndex() (*CommodityChannelIndex, error) {
	return NewCommodityChannelIndexWithParams(DefaultCCIPeriod)
}

func NewCommodityChannelIndexWithParams(period int) (*CommodityChannelIndex, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &CommodityChannelIndex{period: period}, nil
}

// Calculate returns undefined where the mean deviation is zero.
func (c *CommodityChannelIndex) Calculate(s core.Series) ([]float64, error) {
	tp := s.TypicalPrices()
	sma, err := core.SMA(tp, c.period)
	if err != nil {
		return nil, err
	}
	mad, err := core.Rolling(tp, c.period, core.MeanAbsDev)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(tp))
	for i := range tp {
		out[i] = core.Ratio(tp[i]-sma[i], cciScale*mad[i])
	}
	return out, nil
}

func (c *CommodityChannelIndex) Compute(s core.Series) (*core.Result, error) {
	values, err := c.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("cci", s).Add("cci", values), nil
}
