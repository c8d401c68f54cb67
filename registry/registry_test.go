package registry

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/indicator/momentum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries(n int) core.Series {
	rng := rand.New(rand.NewSource(11))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, n)
	price := 50.0
	for i := range bars {
		open := price
		price += rng.NormFloat64() * 0.5
		bars[i] = core.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   max(open, price) + rng.Float64()*0.3,
			Low:    min(open, price) - rng.Float64()*0.3,
			Close:  price,
			Volume: 100 + rng.Float64()*50,
		}
	}
	return core.MustSeries(bars)
}

var allIDs = []string{
	"adl", "adx", "alligator", "aroon", "atr", "bollinger", "cci", "cmf", "cmo",
	"donchian", "ema", "fibonacci", "hma", "ichimoku", "keltner", "macd", "mfi",
	"money_flow", "obv", "parabolic_sar", "pivot_points", "price_action", "roc",
	"rsi", "rvi", "sma", "stddev", "stochastic", "supertrend", "volume_profile",
	"vwap", "williams_r", "wma",
}

func TestDefault_RegistersEveryIndicator(t *testing.T) {
	reg := Default()
	list := reg.List()
	ids := make([]string, len(list))
	for i, h := range list {
		ids[i] = h.ID
		assert.NotEmpty(t, h.Description, h.ID)
	}
	want := append([]string(nil), allIDs...)
	sort.Strings(want)
	assert.Equal(t, want, ids)
}

func TestDefault_EveryHandlerComputesWithDefaults(t *testing.T) {
	reg := Default()
	d := NewDispatcher(reg)
	s := testSeries(150)
	for _, id := range allIDs {
		res, err := d.Compute(id, s, nil)
		require.NoError(t, err, id)
		switch res.Kind {
		case core.KindSeries:
			require.NotEmpty(t, res.Names, id)
			for _, name := range res.Names {
				assert.Len(t, res.Series[name], s.Len(), "%s/%s", id, name)
			}
		case core.KindLabels:
			assert.Len(t, res.Labels["pattern"], s.Len(), id)
		case core.KindSnapshot:
			assert.NotEmpty(t, res.Values, id)
		}
	}
}

func TestResolve_Defaults(t *testing.T) {
	p, err := Default().Resolve("macd", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, p.Int("fast_period"))
	assert.Equal(t, 26, p.Int("slow_period"))
	assert.Equal(t, 9, p.Int("signal_period"))
}

func TestResolve_Coercion(t *testing.T) {
	reg := Default()
	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{"int", 21, 21},
		{"int64", int64(21), 21},
		{"integral float", 21.0, 21},
		{"json number", json.Number("21"), 21},
		{"string", " 21 ", 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := reg.Resolve("rsi", map[string]any{"period": tc.raw})
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Float("period"))
		})
	}

	p, err := reg.Resolve("bollinger", map[string]any{"std_dev": "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.Float("std_dev"))
	assert.Equal(t, 20, p.Int("period"))
}

func TestResolve_Rejections(t *testing.T) {
	reg := Default()
	cases := []struct {
		name  string
		id    string
		raw   map[string]any
		param string
	}{
		{"unknown parameter", "rsi", map[string]any{"length": 14}, "length"},
		{"boolean", "rsi", map[string]any{"period": true}, "period"},
		{"fractional int", "rsi", map[string]any{"period": 14.5}, "period"},
		{"unparsable string", "rsi", map[string]any{"period": "fourteen"}, "period"},
		{"zero period", "rsi", map[string]any{"period": 0}, "period"},
		{"negative period", "sma", map[string]any{"period": -3}, "period"},
		{"zero multiplier", "supertrend", map[string]any{"multiplier": 0.0}, "multiplier"},
		{"one profile edge", "volume_profile", map[string]any{"bins": 1}, "bins"},
		{"negative shift", "alligator", map[string]any{"jaw_shift": -1}, "jaw_shift"},
		{"huge period", "donchian", map[string]any{"period": 20_000_000_000_000}, "period"},
		{"period above limit", "stochastic", map[string]any{"k_period": MaxPeriod + 1}, "k_period"},
		{"huge shift", "ichimoku", map[string]any{"chikou_period": 1e15}, "chikou_period"},
		{"too many profile edges", "volume_profile", map[string]any{"bins": 1_000_000}, "bins"},
		{"slice value", "rsi", map[string]any{"period": []int{1}}, "period"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Resolve(tc.id, tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.id, pe.Indicator)
			assert.Equal(t, tc.param, pe.Param)
		})
	}
}

func TestResolve_ZeroShiftAllowed(t *testing.T) {
	p, err := Default().Resolve("alligator", map[string]any{"lips_shift": 0})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Int("lips_shift"))
}

func TestResolve_UnknownIndicator(t *testing.T) {
	_, err := Default().Resolve("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownIndicator)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestSetDefaults(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.SetDefaults("rsi", map[string]any{"period": 7}))

	p, err := reg.Resolve("rsi", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Int("period"))

	// call-time values still win
	p, err = reg.Resolve("rsi", map[string]any{"period": 21})
	require.NoError(t, err)
	assert.Equal(t, 21, p.Int("period"))

	assert.ErrorIs(t, reg.SetDefaults("rsi", map[string]any{"period": 0}), core.ErrInvalidParameter)
	assert.ErrorIs(t, reg.SetDefaults("missing", nil), ErrUnknownIndicator)
}

func TestRegister_Validation(t *testing.T) {
	reg := New()
	noop := func(core.Series, Params) (*core.Result, error) { return nil, nil }

	assert.Error(t, reg.Register(Handler{Compute: noop}))
	assert.Error(t, reg.Register(Handler{ID: "x"}))
	assert.Error(t, reg.Register(Handler{
		ID:      "bad_default",
		Params:  []ParamSpec{{Name: "period", Kind: Int, Default: 0, Min: 1}},
		Compute: noop,
	}))

	assert.Error(t, reg.Register(Handler{
		ID:      "unbounded",
		Params:  []ParamSpec{{Name: "period", Kind: Int, Default: 5, Min: 1}},
		Compute: noop,
	}), "integer parameter without a maximum")

	require.NoError(t, reg.Register(Handler{ID: "x", Compute: noop}))
	assert.Error(t, reg.Register(Handler{ID: "x", Compute: noop}), "duplicate id")

	h, ok := reg.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "x", h.ID)
}

func TestParseParams(t *testing.T) {
	raw, err := ParseParams(map[string]string{" period ": "10", "std_dev": "1.5"})
	require.NoError(t, err)
	p, err := Default().Resolve("bollinger", raw)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Int("period"))
	assert.Equal(t, 1.5, p.Float("std_dev"))

	_, err = ParseParams(map[string]string{"": "1"})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

type recordingReporter struct {
	mu    sync.Mutex
	calls []string
	errs  int
}

func (r *recordingReporter) ObserveCompute(id string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if err != nil {
		r.errs++
	}
}

func TestDispatcher_ReportsEveryCall(t *testing.T) {
	rep := &recordingReporter{}
	d := NewDispatcher(Default(), WithReporter(rep), WithLogger(nil))
	s := testSeries(40)

	_, err := d.Compute("rsi", s, nil)
	require.NoError(t, err)
	_, err = d.Compute("no_such_indicator", s, nil)
	assert.ErrorIs(t, err, ErrUnknownIndicator)
	_, err = d.Compute("macd", s, map[string]any{"fast_period": 30})
	assert.ErrorIs(t, err, core.ErrInvalidParameter, "fast must stay below slow")

	assert.Equal(t, []string{"rsi", "unknown", "macd"}, rep.calls)
	assert.Equal(t, 2, rep.errs)
}

func TestDispatcher_MatchesDirectComputation(t *testing.T) {
	s := testSeries(80)
	res, err := NewDispatcher(Default()).Compute("rsi", s, map[string]any{"period": 10})
	require.NoError(t, err)

	rsi, err := momentum.NewRelativeStrengthIndexWithParams(10)
	require.NoError(t, err)
	want, err := rsi.Calculate(s)
	require.NoError(t, err)

	got := res.Series["rsi"]
	require.Len(t, got, len(want))
	for i := range want {
		if core.IsUndefined(want[i]) {
			assert.True(t, core.IsUndefined(got[i]), "index %d", i)
			continue
		}
		assert.Equal(t, want[i], got[i], "index %d", i)
	}
}

func TestHandler_JSONSchema(t *testing.T) {
	h, ok := Default().Lookup("bollinger")
	require.True(t, ok)
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"int"`)
	assert.Contains(t, string(b), `"kind":"float"`)
	assert.NotContains(t, string(b), "Compute")
}
