package core

import (
	"fmt"
	"math"
)

// SmoothingMode selects the EMA decay.
type SmoothingMode int

const (
	// Standard uses k = 2/(period+1).
	Standard SmoothingMode = iota
	// Wilder uses k = 1/period (RSI, ATR, ADX).
	Wilder
)

func (m SmoothingMode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Wilder:
		return "wilder"
	default:
		return "unknown"
	}
}

// Factor returns the smoothing factor k for the given period.
func (m SmoothingMode) Factor(period int) float64 {
	if m == Wilder {
		return 1 / float64(period)
	}
	return 2 / float64(period+1)
}

// SMA returns the trailing simple moving average of values. The first
// period-1 positions are undefined.
func SMA(values []float64, period int) ([]float64, error) {
	if err := RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return Rolling(values, period, Mean)
}

// EMA evaluates the recursive filter
//
//	EMA[0] = v[0]
//	EMA[t] = v[t]*k + EMA[t-1]*(1-k)
//
// The recurrence is seeded by the first defined input; earlier positions are
// undefined. An undefined input later in the series yields an undefined output
// at that position and the state carries over to the next defined input.
func EMA(values []float64, period int, mode SmoothingMode) ([]float64, error) {
	if err := RequirePeriod("period", period); err != nil {
		return nil, err
	}
	if mode != Standard && mode != Wilder {
		return nil, fmt.Errorf("%w: unknown smoothing mode %d", ErrInvalidParameter, mode)
	}
	k := mode.Factor(period)
	out := NewUndefined(len(values))
	prev := math.NaN()
	for i, v := range values {
		if IsUndefined(v) {
			continue
		}
		if IsUndefined(prev) {
			prev = v
		} else {
			prev = v*k + prev*(1-k)
		}
		out[i] = prev
	}
	return out, nil
}

// WMA returns the linearly weighted moving average of the trailing period
// values, weights 1..period with the newest value heaviest. Warm-up positions
// and windows containing an undefined value are undefined.
func WMA(values []float64, period int) ([]float64, error) {
	if err := RequirePeriod("period", period); err != nil {
		return nil, err
	}
	out := NewUndefined(len(values))
	denom := float64(period*(period+1)) / 2
	lastNaN := -1
	for i, v := range values {
		if IsUndefined(v) {
			lastNaN = i
		}
		if i < period-1 || lastNaN > i-period {
			continue
		}
		acc := 0.0
		for j := 0; j < period; j++ {
			acc += values[i-period+1+j] * float64(j+1)
		}
		out[i] = acc / denom
	}
	return out, nil
}
