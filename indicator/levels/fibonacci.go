package levels

import (
	"fmt"

	"github.com/evdnx/gotix/indicator/core"
)

var fibonacciRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 1}

// FibonacciRatios returns the retracement depths measured down from the high.
func FibonacciRatios() []float64 { return append([]float64(nil), fibonacciRatios...) }

// FibonacciKey formats a ratio as its snapshot key, e.g. 0.382 → "level_38.2".
func FibonacciKey(ratio float64) string {
	return fmt.Sprintf("level_%.1f", ratio*100)
}

// FibonacciRetracement places retracement levels between the highest high and
// lowest low of the whole series.
type FibonacciRetracement struct{}

func NewFibonacciRetracement() *FibonacciRetracement { return &FibonacciRetracement{} }

// Calculate returns one level per FibonacciRatios() entry, in the same order.
func (FibonacciRetracement) Calculate(s core.Series) []float64 {
	out := core.NewUndefined(len(fibonacciRatios))
	if s.Len() == 0 {
		return out
	}
	hi, lo := s.Bar(0).High, s.Bar(0).Low
	for i := 1; i < s.Len(); i++ {
		hi = max(hi, s.Bar(i).High)
		lo = min(lo, s.Bar(i).Low)
	}
	diff := hi - lo
	for i, r := range fibonacciRatios {
		switch r {
		case 0:
			out[i] = hi
		case 1:
			out[i] = lo
		default:
			out[i] = hi - r*diff
		}
	}
	return out
}

func (f FibonacciRetracement) Compute(s core.Series) (*core.Result, error) {
	res := core.NewSnapshotResult("fibonacci")
	for i, v := range f.Calculate(s) {
		res.Set(FibonacciKey(fibonacciRatios[i]), v)
	}
	return res, nil
}
