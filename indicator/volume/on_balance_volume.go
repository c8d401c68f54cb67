package volume

import "github.com/evdnx/gotix/indicator/core"

// OnBalanceVolume accumulates volume signed by the close-to-close direction.
// The first bar contributes zero.
type OnBalanceVolume struct{}

func NewOnBalanceVolume() *OnBalanceVolume { return &OnBalanceVolume{} }

func (OnBalanceVolume) Calculate(s core.Series) []float64 {
	out := make([]float64, s.Len())
	for i := 1; i < s.Len(); i++ {
		cur, prev := s.Bar(i), s.Bar(i-1)
		out[i] = out[i-1]
		switch {
		case cur.Close > prev.Close:
			out[i] += cur.Volume
		case cur.Close < prev.Close:
			out[i] -= cur.Volume
		}
	}
	return out
}

func (o OnBalanceVolume) Compute(s core.Series) (*core.Result, error) {
	return core.NewSeriesResult("obv", s).Add("obv", o.Calculate(s)), nil
}
