package volatility

import (
	"math"
	"time"

	"github.com/evdnx/gotix/indicator/core"
)

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}

// seriesOf builds daily bars from (high, low, close) triples.
func seriesOf(hlc ...[3]float64) core.Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(hlc))
	for i, v := range hlc {
		bars[i] = core.Bar{Time: start.AddDate(0, 0, i), Open: v[2], High: v[0], Low: v[1], Close: v[2], Volume: 100}
	}
	return core.MustSeries(bars)
}

func closesSeries(closes ...float64) core.Series {
	hlc := make([][3]float64, len(closes))
	for i, c := range closes {
		hlc[i] = [3]float64{c + 1, c - 1, c}
	}
	return seriesOf(hlc...)
}
