package volume

import "github.com/evdnx/gotix/indicator/core"

// VWAP calculates the Volume Weighted Average Price using cumulative sums of
// typical price times volume from the first bar. There is no session reset.
type VWAP struct{}

// NewVWAP constructs a VWAP calculator.
func NewVWAP() *VWAP { return &VWAP{} }

// Calculate returns the running VWAP. Positions where no volume has traded
// yet are undefined.
func (VWAP) Calculate(s core.Series) []float64 {
	out := make([]float64, s.Len())
	var cumPV, cumVol float64
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		cumPV += b.TypicalPrice() * b.Volume
		cumVol += b.Volume
		out[i] = core.Ratio(cumPV, cumVol)
	}
	return out
}

func (v VWAP) Compute(s core.Series) (*core.Result, error) {
	return core.NewSeriesResult("vwap", s).Add("vwap", v.Calculate(s)), nil
}
