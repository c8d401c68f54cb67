// Package metrics records indicator dispatch and HTTP outcomes in Prometheus
// collectors held on a private registry.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/registry"
)

const namespace = "gotix"

// Reporter implements registry.Reporter.
type Reporter struct {
	reg *prometheus.Registry

	ComputeTotal    *prometheus.CounterVec   // labels: indicator, outcome
	ComputeDuration *prometheus.HistogramVec // labels: indicator
	HTTPRequests    *prometheus.CounterVec   // labels: route, code
	RateLimited     prometheus.Counter
}

var _ registry.Reporter = (*Reporter)(nil)

// NewReporter creates and registers all collectors.
func NewReporter() *Reporter {
	r := &Reporter{
		reg: prometheus.NewRegistry(),
		ComputeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicator_computations_total",
			Help:      "Indicator computations by outcome",
		}, []string{"indicator", "outcome"}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "indicator_compute_duration_seconds",
			Help:      "Indicator computation latency",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"indicator"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
	r.reg.MustRegister(
		r.ComputeTotal,
		r.ComputeDuration,
		r.HTTPRequests,
		r.RateLimited,
		collectors.NewGoCollector(),
	)
	return r
}

// Outcome classifies a dispatch error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, registry.ErrUnknownIndicator):
		return "unknown_indicator"
	case errors.Is(err, core.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, core.ErrInvalidSeries):
		return "invalid_series"
	default:
		return "error"
	}
}

// ObserveCompute records one dispatched computation.
func (r *Reporter) ObserveCompute(indicator string, elapsed time.Duration, err error) {
	r.ComputeTotal.WithLabelValues(indicator, Outcome(err)).Inc()
	r.ComputeDuration.WithLabelValues(indicator).Observe(elapsed.Seconds())
}

// ObserveRequest records one HTTP response.
func (r *Reporter) ObserveRequest(route string, code int) {
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ObserveRateLimited records a rejected request.
func (r *Reporter) ObserveRateLimited() { r.RateLimited.Inc() }

// Registry exposes the private registry for tests and custom exporters.
func (r *Reporter) Registry() *prometheus.Registry { return r.reg }

// Handler serves the collectors in the Prometheus text format.
func (r *Reporter) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
