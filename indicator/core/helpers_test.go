package core

import (
	"math"
	"math/rand"
	"time"
)

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= eps*scale
}

// randomWalk returns n deterministic prices starting near 100.
func randomWalk(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		p += rng.Float64()*2 - 1
		out[i] = p
	}
	return out
}

// barsFromCloses builds daily bars with a one-unit range around each close.
func barsFromCloses(closes []float64) []Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, len(closes))
	for i, c := range closes {
		bars[i] = Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}
