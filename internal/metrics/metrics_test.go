package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/registry"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "unknown_indicator", Outcome(fmt.Errorf("%w: %q", registry.ErrUnknownIndicator, "x")))
	assert.Equal(t, "invalid_parameter", Outcome(&registry.ParamError{Indicator: "rsi", Param: "period"}))
	assert.Equal(t, "invalid_series", Outcome(fmt.Errorf("wrap: %w", core.ErrInvalidSeries)))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestReporter_ObserveCompute(t *testing.T) {
	r := NewReporter()
	r.ObserveCompute("rsi", time.Millisecond, nil)
	r.ObserveCompute("rsi", time.Millisecond, nil)
	r.ObserveCompute("rsi", time.Millisecond, core.ErrInvalidParameter)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ComputeTotal.WithLabelValues("rsi", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ComputeTotal.WithLabelValues("rsi", "invalid_parameter")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.ComputeDuration))
}

func TestReporter_WithDispatcher(t *testing.T) {
	r := NewReporter()
	d := registry.NewDispatcher(registry.Default(), registry.WithReporter(r))
	bars := []core.Bar{{Time: time.Unix(0, 0), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}}
	s := core.MustSeries(bars)

	_, err := d.Compute("obv", s, nil)
	require.NoError(t, err)
	_, _ = d.Compute("missing", s, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ComputeTotal.WithLabelValues("obv", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ComputeTotal.WithLabelValues("unknown", "unknown_indicator")))
}

func TestReporter_Handler(t *testing.T) {
	r := NewReporter()
	r.ObserveRequest("/v1/indicators", 200)
	r.ObserveRateLimited()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `gotix_http_requests_total{code="200",route="/v1/indicators"} 1`)
	assert.Contains(t, string(body), "gotix_http_rate_limited_total 1")
}
