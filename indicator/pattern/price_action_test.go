package pattern

import (
	"testing"
	"time"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ohlc is {open, high, low, close}.
func series(bars ...[4]float64) core.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]core.Bar, len(bars))
	for i, b := range bars {
		out[i] = core.Bar{Time: start.Add(time.Duration(i) * time.Hour), Open: b[0], High: b[1], Low: b[2], Close: b[3], Volume: 100}
	}
	return core.MustSeries(out)
}

func TestPriceAction_Patterns(t *testing.T) {
	s := series(
		[4]float64{10, 10.5, 8.5, 9},   // bearish body
		[4]float64{8.8, 11, 8.5, 10.5}, // engulfs the previous body upwards
		[4]float64{11, 11.5, 9, 10},    // bearish body closing above the previous open
		[4]float64{10, 12, 8, 10.05},   // tiny body in a wide range
		[4]float64{10.1, 10.6, 9.9, 10.5},
		[4]float64{10.8, 11, 9.5, 9.8}, // engulfs the previous body downwards
	)
	got := NewPriceAction().Calculate(s)
	assert.Equal(t, []string{"", BullishEngulfing, "", Doji, "", BearishEngulfing}, got)
}

func TestPriceAction_DojiOverridesEngulfing(t *testing.T) {
	// second bar engulfs the first and its body is under 10% of its range
	s := series(
		[4]float64{10, 10.2, 9.9, 9.95},
		[4]float64{9.9, 20, 1, 10.05},
	)
	cur := s.Bar(1)
	prev := s.Bar(0)
	require.True(t, bullishEngulfing(&prev, cur))
	require.True(t, doji(&prev, cur))

	assert.Equal(t, Doji, NewPriceAction().Calculate(s)[1])

	first := NewPriceActionWithRules(DefaultRules(), FirstMatchWins)
	assert.Equal(t, BullishEngulfing, first.Calculate(s)[1])
}

func TestPriceAction_FirstBar(t *testing.T) {
	// no previous bar: only a doji can match
	got := NewPriceAction().Calculate(series([4]float64{10, 12, 8, 10}))
	assert.Equal(t, []string{Doji}, got)

	got = NewPriceAction().Calculate(series([4]float64{8, 12, 8, 12}))
	assert.Equal(t, []string{""}, got)
}

func TestPriceAction_FlatBarIsNotDoji(t *testing.T) {
	got := NewPriceAction().Calculate(series([4]float64{10, 10, 10, 10}))
	assert.Equal(t, []string{""}, got)
}

func TestPriceAction_Compute(t *testing.T) {
	s := series([4]float64{10, 12, 8, 10}, [4]float64{10, 11, 9, 10.9})
	res, err := NewPriceAction().Compute(s)
	require.NoError(t, err)
	assert.Equal(t, core.KindLabels, res.Kind)
	assert.Equal(t, []string{"pattern"}, res.Names)
	assert.Len(t, res.Labels["pattern"], 2)

	empty, err := NewPriceAction().Compute(core.Series{})
	require.NoError(t, err)
	assert.Empty(t, empty.Labels["pattern"])
}
