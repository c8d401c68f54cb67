package momentum

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

var epoch = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

type ohlc struct {
	o, h, l, c float64
}

func ohlcSeries(rows ...ohlc) core.Series {
	bars := make([]core.Bar, len(rows))
	for i, r := range rows {
		bars[i] = core.Bar{Time: epoch.AddDate(0, 0, i), Open: r.o, High: r.h, Low: r.l, Close: r.c, Volume: 1}
	}
	return core.MustSeries(bars)
}

// hlcSeries uses the close as the open.
func hlcSeries(hlc ...[3]float64) core.Series {
	rows := make([]ohlc, len(hlc))
	for i, v := range hlc {
		rows[i] = ohlc{v[2], v[0], v[1], v[2]}
	}
	return ohlcSeries(rows...)
}

func closeSeries(closes ...float64) core.Series {
	hlc := make([][3]float64, len(closes))
	for i, c := range closes {
		hlc[i] = [3]float64{c + 1, c - 1, c}
	}
	return hlcSeries(hlc...)
}

func randomSeries(n int, seed int64) core.Series {
	r := rand.New(rand.NewSource(seed))
	rows := make([]ohlc, n)
	p := 50.0
	for i := range rows {
		o := p
		p += r.Float64()*2 - 1
		h := math.Max(o, p) + r.Float64()
		l := math.Min(o, p) - r.Float64()
		rows[i] = ohlc{o, h, l, p}
	}
	return ohlcSeries(rows...)
}
