package volatility

import (
	"testing"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonchianChannel(t *testing.T) {
	s := seriesOf(
		[3]float64{10, 8, 9},
		[3]float64{12, 9, 11},
		[3]float64{11, 7, 8},
		[3]float64{9, 8, 8.5},
	)
	dc, err := NewDonchianChannelWithParams(3)
	require.NoError(t, err)
	out, err := dc.Calculate(s)
	require.NoError(t, err)

	assert.True(t, core.IsUndefined(out.Upper[1]))
	assert.Equal(t, 12.0, out.Upper[2])
	assert.Equal(t, 7.0, out.Lower[2])
	assert.Equal(t, 9.5, out.Middle[2])
	assert.Equal(t, 12.0, out.Upper[3])
	assert.Equal(t, 7.0, out.Lower[3])
}

func TestKeltnerChannel(t *testing.T) {
	s := seriesOf(
		[3]float64{12, 8, 10},
		[3]float64{15, 13, 14},
		[3]float64{14, 11, 12},
	)
	kc, err := NewKeltnerChannelWithParams(3, 2, 1.5)
	require.NoError(t, err)
	out, err := kc.Calculate(s)
	require.NoError(t, err)

	ema, _ := core.EMA([]float64{10, 14, 12}, 3, core.Standard)
	atr := []float64{4, 4.5, 3.75}
	for i := range ema {
		assert.InDelta(t, ema[i], out.Middle[i], 1e-9)
		assert.InDelta(t, ema[i]+1.5*atr[i], out.Upper[i], 1e-9)
		assert.InDelta(t, ema[i]-1.5*atr[i], out.Lower[i], 1e-9)
	}
}

func TestKeltnerChannel_InvalidParams(t *testing.T) {
	_, err := NewKeltnerChannelWithParams(20, 0, 2)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = NewKeltnerChannelWithParams(20, 10, -1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestStandardDeviation(t *testing.T) {
	sd, err := NewStandardDeviationWithParams(2)
	require.NoError(t, err)
	got, err := sd.Calculate(closesSeries(1, 3, 3))
	require.NoError(t, err)
	assert.True(t, core.IsUndefined(got[0]))
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.InDelta(t, 0.0, got[2], 1e-12)
}
