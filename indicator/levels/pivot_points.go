// Package levels computes snapshot support/resistance levels: classic floor
// pivots from the latest bar and Fibonacci retracements over the full range.
package levels

import "github.com/evdnx/gotix/indicator/core"

var pivotKeys = []string{"R3", "R2", "R1", "Pivot", "S1", "S2", "S3"}

// PivotKeys lists the pivot snapshot keys from highest to lowest level.
func PivotKeys() []string { return append([]string(nil), pivotKeys...) }

// PivotPoints derives classic floor-trader pivots from the latest bar.
type PivotPoints struct{}

func NewPivotPoints() *PivotPoints { return &PivotPoints{} }

// Calculate maps each key of PivotKeys() to its level. An empty series leaves
// every level undefined.
func (PivotPoints) Calculate(s core.Series) map[string]float64 {
	out := make(map[string]float64, len(pivotKeys))
	last, ok := s.Last()
	if !ok {
		for _, k := range pivotKeys {
			out[k] = core.Undefined()
		}
		return out
	}
	h, l, c := last.High, last.Low, last.Close
	p := (h + l + c) / 3
	out["Pivot"] = p
	out["R1"] = 2*p - l
	out["S1"] = 2*p - h
	out["R2"] = p + (h - l)
	out["S2"] = p - (h - l)
	out["R3"] = h + 2*(p-l)
	out["S3"] = l - 2*(h-p)
	return out
}

func (pp PivotPoints) Compute(s core.Series) (*core.Result, error) {
	levels := pp.Calculate(s)
	res := core.NewSnapshotResult("pivot_points")
	for _, k := range pivotKeys {
		res.Set(k, levels[k])
	}
	return res, nil
}
