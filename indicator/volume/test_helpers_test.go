package volume

import (
	"math/rand"
	"time"

	"github.com/evdnx/gotix/indicator/core"
)

var epoch = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type candle struct {
	h, l, c, v float64
}

func candles(cs ...candle) core.Series {
	bars := make([]core.Bar, len(cs))
	for i, c := range cs {
		bars[i] = core.Bar{Time: epoch.Add(time.Duration(i) * time.Minute), Open: c.c, High: c.h, Low: c.l, Close: c.c, Volume: c.v}
	}
	return core.MustSeries(bars)
}

func randomCandles(n int, seed int64) core.Series {
	r := rand.New(rand.NewSource(seed))
	cs := make([]candle, n)
	p := 20.0
	for i := range cs {
		p += r.Float64() - 0.5
		h := p + r.Float64()
		l := p - r.Float64()
		cs[i] = candle{h, l, l + r.Float64()*(h-l), 100 + r.Float64()*900}
	}
	return candles(cs...)
}
