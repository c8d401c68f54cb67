package trend

import "github.com/evdnx/gotix/indicator/core"

const (
	DefaultTenkanPeriod  = 9
	DefaultKijunPeriod   = 26
	DefaultSenkouBPeriod = 52
	DefaultChikouPeriod  = 26
)

// IchimokuCloud produces the five Ichimoku lines. Both senkou spans are
// shifted forward by the kijun period and the chikou span is the close
// shifted back by the chikou period, so their tails are undefined.
type IchimokuCloud struct {
	tenkanPeriod  int
	kijunPeriod   int
	senkouBPeriod int
	chikouPeriod  int
}

type IchimokuOutput struct {
	TenkanSen   []float64
	KijunSen    []float64
	SenkouSpanA []float64
	SenkouSpanB []float64
	ChikouSpan  []float64
}

func NewIchimokuCloud() (*IchimokuCloud, error) {
	return NewIchimokuCloudWithParams(DefaultTenkanPeriod, DefaultKijunPeriod, DefaultSenkouBPeriod, DefaultChikouPeriod)
}

func NewIchimokuCloudWithParams(tenkan, kijun, senkouB, chikou int) (*IchimokuCloud, error) {
	periods := []struct {
		name string
		v    int
	}{
		{"tenkan_period", tenkan},
		{"kijun_period", kijun},
		{"senkou_b_period", senkouB},
		{"chikou_period", chikou},
	}
	for _, p := range periods {
		if err := core.RequirePeriod(p.name, p.v); err != nil {
			return nil, err
		}
	}
	return &IchimokuCloud{tenkanPeriod: tenkan, kijunPeriod: kijun, senkouBPeriod: senkouB, chikouPeriod: chikou}, nil
}

// midpoint is (rolling max high + rolling min low) / 2.
func midpoint(s core.Series, period int) ([]float64, error) {
	hi, err := core.RollingMax(s.Highs(), period)
	if err != nil {
		return nil, err
	}
	lo, err := core.RollingMin(s.Lows(), period)
	if err != nil {
		return nil, err
	}
	return core.Zip(hi, lo, func(h, l float64) float64 { return (h + l) / 2 }), nil
}

func (ic *IchimokuCloud) Calculate(s core.Series) (IchimokuOutput, error) {
	tenkan, err := midpoint(s, ic.tenkanPeriod)
	if err != nil {
		return IchimokuOutput{}, err
	}
	kijun, err := midpoint(s, ic.kijunPeriod)
	if err != nil {
		return IchimokuOutput{}, err
	}
	spanB, err := midpoint(s, ic.senkouBPeriod)
	if err != nil {
		return IchimokuOutput{}, err
	}
	spanA := core.Zip(tenkan, kijun, func(t, k float64) float64 { return (t + k) / 2 })
	return IchimokuOutput{
		TenkanSen:   tenkan,
		KijunSen:    kijun,
		SenkouSpanA: core.Shift(spanA, ic.kijunPeriod),
		SenkouSpanB: core.Shift(spanB, ic.kijunPeriod),
		ChikouSpan:  core.Shift(s.Closes(), -ic.chikouPeriod),
	}, nil
}

func (ic *IchimokuCloud) Compute(s core.Series) (*core.Result, error) {
	out, err := ic.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("ichimoku", s).
		Add("tenkan_sen", out.TenkanSen).
		Add("kijun_sen", out.KijunSen).
		Add("senkou_span_a", out.SenkouSpanA).
		Add("senkou_span_b", out.SenkouSpanB).
		Add("chikou_span", out.ChikouSpan), nil
}
