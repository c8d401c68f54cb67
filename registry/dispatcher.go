package registry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/evdnx/gotix/indicator/core"
)

// Reporter observes every dispatched computation.
type Reporter interface {
	ObserveCompute(indicator string, elapsed time.Duration, err error)
}

// Dispatcher resolves parameters and invokes handlers.
type Dispatcher struct {
	reg      *Registry
	reporter Reporter
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithReporter attaches a Reporter.
func WithReporter(r Reporter) Option {
	return func(d *Dispatcher) { d.reporter = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{reg: reg, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// Compute runs indicator id over s with the raw parameters.
func (d *Dispatcher) Compute(id string, s core.Series, raw map[string]any) (*core.Result, error) {
	start := time.Now()
	res, err := d.compute(id, s, raw)
	elapsed := time.Since(start)

	label := id
	if _, ok := d.reg.Lookup(id); !ok {
		label = "unknown"
	}
	if d.reporter != nil {
		d.reporter.ObserveCompute(label, elapsed, err)
	}
	if err != nil {
		d.logger.Debug("indicator failed", "indicator", id, "bars", s.Len(), "err", err)
	} else {
		d.logger.Debug("indicator computed", "indicator", id, "bars", s.Len(), "elapsed", elapsed)
	}
	return res, err
}

func (d *Dispatcher) compute(id string, s core.Series, raw map[string]any) (*core.Result, error) {
	h, ok := d.reg.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, id)
	}
	p, err := d.reg.Resolve(id, raw)
	if err != nil {
		return nil, err
	}
	res, err := h.Compute(s, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return res, nil
}
