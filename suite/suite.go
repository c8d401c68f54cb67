// Package suite evaluates several independent indicator requests over one
// series.
package suite

import (
	"context"
	"sync"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/registry"
)

const DefaultWorkers = 4

// Request names one indicator computation. Key distinguishes requests for
// the same indicator with different parameters; it defaults to Indicator.
type Request struct {
	Key       string         `json:"key,omitempty"`
	Indicator string         `json:"indicator"`
	Params    map[string]any `json:"params,omitempty"`
}

func (r Request) key() string {
	if r.Key != "" {
		return r.Key
	}
	return r.Indicator
}

// Outcome is the result of one Request.
type Outcome struct {
	Key       string
	Indicator string
	Result    *core.Result
	Err       error
}

type options struct {
	workers int
}

// Option tunes Run.
type Option func(*options)

// WithWorkers bounds the number of concurrent computations. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Run dispatches every request and returns one Outcome per request, in
// request order. Cancellation is checked before each request is started;
// requests that never started carry ctx.Err() and Run returns it too. A
// computation already running is allowed to finish.
func Run(ctx context.Context, d *registry.Dispatcher, s core.Series, reqs []Request, opts ...Option) ([]Outcome, error) {
	o := options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]Outcome, len(reqs))
	for i, req := range reqs {
		out[i] = Outcome{Key: req.key(), Indicator: req.Indicator}
	}

	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup

	for i, req := range reqs {
		if err := acquire(ctx, sem); err != nil {
			for j := i; j < len(reqs); j++ {
				out[j].Err = err
			}
			wg.Wait()
			return out, err
		}
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i].Result, out[i].Err = d.Compute(req.Indicator, s, req.Params)
		}(i, req)
	}

	wg.Wait()
	return out, nil
}

func acquire(ctx context.Context, sem chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case sem <- struct{}{}:
		// a slot freed after cancellation must not start new work
		if err := ctx.Err(); err != nil {
			<-sem
			return err
		}
		return nil
	}
}

// PlotData collects the plot entries of every successful outcome, prefixing
// each entry name with the outcome key.
func PlotData(outcomes []Outcome) []core.PlotData {
	var data []core.PlotData
	for _, oc := range outcomes {
		if oc.Err != nil || oc.Result == nil {
			continue
		}
		for _, pd := range oc.Result.PlotData() {
			pd.Name = oc.Key + "." + pd.Name
			data = append(data, pd)
		}
	}
	return data
}

// Errors returns the failed outcomes keyed by request key.
func Errors(outcomes []Outcome) map[string]error {
	errs := make(map[string]error)
	for _, oc := range outcomes {
		if oc.Err != nil {
			errs[oc.Key] = oc.Err
		}
	}
	return errs
}
