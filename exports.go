// Package gotix is a technical indicator engine. It turns an ordered OHLCV
// series into derived numeric series, label series or snapshot levels.
//
// The root package offers short entry points; the indicator packages under
// indicator/ can also be used directly.
package gotix

import (
	"context"
	"io"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/internal/feed"
	"github.com/evdnx/gotix/registry"
	"github.com/evdnx/gotix/suite"
)

// ---- Data model ----
type (
	Bar      = core.Bar
	Series   = core.Series
	Result   = core.Result
	PlotData = core.PlotData
)

var (
	ErrInvalidParameter = core.ErrInvalidParameter
	ErrInvalidSeries    = core.ErrInvalidSeries
	ErrUnknownIndicator = registry.ErrUnknownIndicator
)

func NewSeries(bars []Bar) (Series, error) { return core.NewSeries(bars) }

// IsUndefined reports whether v marks a warm-up or indeterminate position.
func IsUndefined(v float64) bool { return core.IsUndefined(v) }

// ---- Loading ----
func ParseCSV(r io.Reader) (Series, error) { return feed.ParseCSV(r) }

func LoadCSV(path string) (Series, error) { return feed.LoadCSV(path) }

// ---- Dispatch ----
type (
	Registry   = registry.Registry
	Dispatcher = registry.Dispatcher
	Handler    = registry.Handler
	Request    = suite.Request
	Outcome    = suite.Outcome
)

// DefaultRegistry returns a registry holding every built-in indicator.
func DefaultRegistry() *Registry { return registry.Default() }

// Compute runs indicator id over s with the built-in registry.
func Compute(id string, s Series, params map[string]any) (*Result, error) {
	return registry.NewDispatcher(registry.Default()).Compute(id, s, params)
}

// ComputeAll evaluates independent requests concurrently with the built-in
// registry.
func ComputeAll(ctx context.Context, s Series, reqs []Request) ([]Outcome, error) {
	return suite.Run(ctx, registry.NewDispatcher(registry.Default()), s, reqs)
}

// ---- Formatting ----
func FormatPlotDataJSON(data []PlotData) (string, error) { return core.FormatPlotDataJSON(data) }

func FormatPlotDataCSV(data []PlotData) (string, error) { return core.FormatPlotDataCSV(data) }
