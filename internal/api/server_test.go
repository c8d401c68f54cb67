package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/internal/metrics"
	"github.com/evdnx/gotix/registry"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return New(registry.NewDispatcher(registry.Default()), opts)
}

func barsJSON(n int) []map[string]any {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]map[string]any, n)
	for i := range out {
		c := 100 + float64(i%7) - float64(i%3)
		out[i] = map[string]any{
			"time":   start.AddDate(0, 0, i).Format(time.RFC3339),
			"open":   c - 0.5,
			"high":   c + 1,
			"low":    c - 1,
			"close":  c,
			"volume": 1000 + i,
		}
	}
	return out
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestListIndicators(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodGet, "/v1/indicators", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ID     string `json:"id"`
		Params []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, len(registry.Default().List()))
	assert.Equal(t, "adl", list[0].ID)
}

func TestSchema(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec := do(t, srv, http.MethodGet, "/v1/indicators/keltner", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"atr_period"`)

	rec = do(t, srv, http.MethodGet, "/v1/indicators/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompute_Series(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/v1/indicators/sma",
		map[string]any{"bars": barsJSON(5), "params": map[string]any{"period": 3}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Indicator  string                      `json:"indicator"`
		Timestamps []time.Time                 `json:"timestamps"`
		Series     map[string][]core.NullFloat `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sma", body.Indicator)
	assert.Len(t, body.Timestamps, 5)
	sma := body.Series["sma"]
	require.Len(t, sma, 5)
	assert.True(t, core.IsUndefined(float64(sma[0])), "warm-up is null")
	assert.False(t, core.IsUndefined(float64(sma[2])))
	assert.Contains(t, rec.Body.String(), `null`)
}

func TestCompute_Snapshot(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/v1/indicators/pivot_points",
		map[string]any{"bars": barsJSON(3)})
	require.Equal(t, http.StatusOK, rec.Code)

	var levels map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	assert.Len(t, levels, 7)
	assert.Greater(t, levels["R1"], levels["S1"])
}

func TestCompute_StatusMapping(t *testing.T) {
	srv := newTestServer(t, Options{MaxBars: 10})
	unordered := barsJSON(3)
	unordered[2]["time"] = unordered[0]["time"]

	cases := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown indicator", "/v1/indicators/nope", map[string]any{"bars": barsJSON(3)}, http.StatusNotFound},
		{"bad param value", "/v1/indicators/rsi", map[string]any{"bars": barsJSON(3), "params": map[string]any{"period": 0}}, http.StatusBadRequest},
		{"unknown param", "/v1/indicators/rsi", map[string]any{"bars": barsJSON(3), "params": map[string]any{"len": 3}}, http.StatusBadRequest},
		{"constructor rejection", "/v1/indicators/macd", map[string]any{"bars": barsJSON(3), "params": map[string]any{"fast_period": 40}}, http.StatusBadRequest},
		{"unordered bars", "/v1/indicators/sma", map[string]any{"bars": unordered}, http.StatusUnprocessableEntity},
		{"too many bars", "/v1/indicators/sma", map[string]any{"bars": barsJSON(11)}, http.StatusRequestEntityTooLarge},
		{"unknown field", "/v1/indicators/sma", map[string]any{"candles": barsJSON(3)}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())

			var e errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), e.RequestID)
		})
	}
}

func TestCompute_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/indicators/sma", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	srv := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	reporter := metrics.NewReporter()
	srv := newTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 2, Reporter: reporter})

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/v1/indicators", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/v1/indicators", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, srv, http.MethodGet, "/v1/indicators", nil).Code)

	// health and metrics are not limited
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/healthz", nil).Code)
	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gotix_http_rate_limited_total 1")
}

func TestBatch(t *testing.T) {
	reporter := metrics.NewReporter()
	srv := newTestServer(t, Options{Reporter: reporter})
	body := map[string]any{
		"bars": barsJSON(60),
		"requests": []map[string]any{
			{"indicator": "rsi"},
			{"key": "rsi_fast", "indicator": "rsi", "params": map[string]any{"period": 5}},
			{"indicator": "fibonacci"},
			{"indicator": "nope"},
		},
	}
	rec := do(t, srv, http.MethodPost, "/v1/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Results map[string]json.RawMessage `json:"results"`
		Errors  map[string]string          `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)
	assert.Contains(t, resp.Results, "rsi_fast")
	assert.Contains(t, resp.Errors["nope"], "unknown indicator")

	metricsBody := do(t, srv, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, metricsBody, `gotix_indicator_computations_total{indicator="rsi",outcome="ok"} 2`)
}

func TestBatch_Validation(t *testing.T) {
	srv := newTestServer(t, Options{MaxRequests: 2})
	cases := map[string][]map[string]any{
		"empty":     {},
		"too many":  {{"indicator": "sma"}, {"indicator": "ema"}, {"indicator": "wma"}},
		"duplicate": {{"indicator": "sma"}, {"indicator": "sma"}},
	}
	for name, reqs := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/v1/batch", map[string]any{"bars": barsJSON(5), "requests": reqs})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("x: %w", registry.ErrUnknownIndicator)))
	assert.Equal(t, http.StatusBadRequest, statusFor(&registry.ParamError{}))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(core.ErrInvalidSeries))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
