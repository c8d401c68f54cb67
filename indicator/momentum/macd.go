package momentum

import (
	"fmt"

	"github.com/evdnx/gotix/indicator/core"
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACD implements the Moving Average Convergence Divergence indicator.
// It produces the MACD line (fast EMA - slow EMA), the signal line (EMA of MACD),
// and the histogram (MACD - signal).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

type MACDOutput struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// NewMACD creates a MACD with the standard 12/26/9 periods.
func NewMACD() (*MACD, error) {
	return NewMACDWithParams(DefaultMACDFastPeriod, DefaultMACDSlowPeriod, DefaultMACDSignalPeriod)
}

// NewMACDWithParams creates a MACD with custom fast/slow/signal periods.
func NewMACDWithParams(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	for _, p := range []struct {
		name string
		v    int
	}{{"fast_period", fastPeriod}, {"slow_period", slowPeriod}, {"signal_period", signalPeriod}} {
		if err := core.RequirePeriod(p.name, p.v); err != nil {
			return nil, err
		}
	}
	if fastPeriod >= slowPeriod {
		return nil, fmt.Errorf("%w: fast period %d must be less than slow period %d",
			core.ErrInvalidParameter, fastPeriod, slowPeriod)
	}
	return &MACD{fastPeriod: fastPeriod, slowPeriod: slowPeriod, signalPeriod: signalPeriod}, nil
}

func (m *MACD) Calculate(s core.Series) (MACDOutput, error) {
	closes := s.Closes()
	fast, err := core.EMA(closes, m.fastPeriod, core.Standard)
	if err != nil {
		return MACDOutput{}, fmt.Errorf("fast EMA: %w", err)
	}
	slow, err := core.EMA(closes, m.slowPeriod, core.Standard)
	if err != nil {
		return MACDOutput{}, fmt.Errorf("slow EMA: %w", err)
	}
	line := core.Zip(fast, slow, func(f, s float64) float64 { return f - s })
	signal, err := core.EMA(line, m.signalPeriod, core.Standard)
	if err != nil {
		return MACDOutput{}, fmt.Errorf("signal EMA: %w", err)
	}
	return MACDOutput{
		MACD:      line,
		Signal:    signal,
		Histogram: core.Zip(line, signal, func(l, s float64) float64 { return l - s }),
	}, nil
}

func (m *MACD) Compute(s core.Series) (*core.Result, error) {
	out, err := m.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("macd", s).
		Add("macd", out.MACD).
		Add("signal", out.Signal).
		Add("histogram", out.Histogram), nil
}
