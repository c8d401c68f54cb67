package trend

import (
	"math"
	"math/rand"
	"time"

	"github.com/evdnx/gotix/indicator/core"
)

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}

var epoch = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// hlSeries builds bars from (high, low) pairs with close at the midpoint.
func hlSeries(hl ...[2]float64) core.Series {
	bars := make([]core.Bar, len(hl))
	for i, v := range hl {
		mid := (v[0] + v[1]) / 2
		bars[i] = core.Bar{Time: epoch.Add(time.Duration(i) * time.Hour), Open: mid, High: v[0], Low: v[1], Close: mid, Volume: 10}
	}
	return core.MustSeries(bars)
}

// generateOHLCSeries simulates a gently drifting market with random jitter.
// The generator is seeded so runs are repeatable.
func generateOHLCSeries(n int, seed int64) core.Series {
	r := rand.New(rand.NewSource(seed))
	bars := make([]core.Bar, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += r.Float64()*2 - 0.98
		high := price + r.Float64()*0.8
		low := price - r.Float64()*0.8
		bars[i] = core.Bar{
			Time:   epoch.Add(time.Duration(i) * time.Minute),
			Open:   price,
			High:   high,
			Low:    low,
			Close:  low + r.Float64()*(high-low),
			Volume: 100 + r.Float64()*50,
		}
	}
	return core.MustSeries(bars)
}

func constantSeries(n int, price float64) core.Series {
	bars := make([]core.Bar, n)
	for i := range bars {
		bars[i] = core.Bar{Time: epoch.Add(time.Duration(i) * time.Hour), Open: price, High: price, Low: price, Close: price, Volume: 1}
	}
	return core.MustSeries(bars)
}

// prefix returns the first n bars of s as a new series.
func prefix(s core.Series, n int) core.Series {
	return core.MustSeries(s.Bars()[:n])
}
