package core

import (
	"fmt"
	"math"
)

// Reducer selects the trailing-window reduction performed by Rolling.
type Reducer int

const (
	Sum Reducer = iota
	Mean
	StdDev // population standard deviation
	Min
	Max
	ArgMin // offset of the minimum inside the window, 0 = oldest bar
	ArgMax // offset of the maximum inside the window, 0 = oldest bar
	MeanAbsDev
)

func (r Reducer) String() string {
	switch r {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	case StdDev:
		return "stddev"
	case Min:
		return "min"
	case Max:
		return "max"
	case ArgMin:
		return "argmin"
	case ArgMax:
		return "argmax"
	case MeanAbsDev:
		return "meanabsdev"
	default:
		return "unknown"
	}
}

// Rolling reduces every trailing window of period values (the current value
// and the period-1 before it). The first period-1 outputs are undefined, and so
// is any window that contains an undefined value.
func Rolling(values []float64, period int, r Reducer) ([]float64, error) {
	if err := RequirePeriod("period", period); err != nil {
		return nil, err
	}
	switch r {
	case Sum, Mean:
		return rollingSum(values, period, r == Mean), nil
	case StdDev, MeanAbsDev:
		return rollingDispersion(values, period, r), nil
	case Min, Max, ArgMin, ArgMax:
		return rollingExtreme(values, period, r), nil
	default:
		return nil, fmt.Errorf("%w: unknown reducer %d", ErrInvalidParameter, r)
	}
}

// RollingSum is Rolling(values, period, Sum).
func RollingSum(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, Sum)
}

// RollingMean is Rolling(values, period, Mean).
func RollingMean(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, Mean)
}

// RollingStdDev is Rolling(values, period, StdDev).
func RollingStdDev(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, StdDev)
}

// RollingMin is Rolling(values, period, Min).
func RollingMin(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, Min)
}

// RollingMax is Rolling(values, period, Max).
func RollingMax(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, Max)
}

// RollingArgMin is Rolling(values, period, ArgMin).
func RollingArgMin(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, ArgMin)
}

// RollingArgMax is Rolling(values, period, ArgMax).
func RollingArgMax(values []float64, period int) ([]float64, error) {
	return Rolling(values, period, ArgMax)
}

// Shift moves values forward by offset positions (backward when offset is
// negative). Vacated positions are undefined; values pushed past either end
// are dropped.
func Shift(values []float64, offset int) []float64 {
	out := NewUndefined(len(values))
	for i, v := range values {
		j := i + offset
		if j >= 0 && j < len(out) {
			out[j] = v
		}
	}
	return out
}

// rollingSum splits the series into blocks of period values and keeps, for
// every position, the sum from its block start (prefix) and the sum to its
// block end (suffix). A window spans at most two blocks, so its sum is
// suffix[start] + prefix[end] and only values inside the window contribute.
func rollingSum(values []float64, period int, mean bool) []float64 {
	n := len(values)
	out := NewUndefined(n)
	if n < period {
		return out
	}
	at := func(i int) float64 {
		if IsUndefined(values[i]) {
			return 0
		}
		return values[i]
	}
	prefix := make([]float64, n)
	suffix := make([]float64, n)
	for lo := 0; lo < n; lo += period {
		hi := min(lo+period, n) - 1
		prefix[lo] = at(lo)
		for i := lo + 1; i <= hi; i++ {
			prefix[i] = prefix[i-1] + at(i)
		}
		suffix[hi] = at(hi)
		for i := hi - 1; i >= lo; i-- {
			suffix[i] = at(i) + suffix[i+1]
		}
	}

	lastNaN := -1
	for i, v := range values {
		if IsUndefined(v) {
			lastNaN = i
		}
		start := i - period + 1
		if start < 0 || lastNaN >= start {
			continue
		}
		sum := prefix[i]
		if start%period != 0 {
			sum = suffix[start] + prefix[i]
		}
		if mean {
			out[i] = sum / float64(period)
		} else {
			out[i] = sum
		}
	}
	return out
}

// rollingDispersion evaluates each window in two passes around its own mean,
// which keeps flat windows at exactly zero.
func rollingDispersion(values []float64, period int, r Reducer) []float64 {
	out := NewUndefined(len(values))
	lastNaN := -1
	for i, v := range values {
		if IsUndefined(v) {
			lastNaN = i
		}
		if i < period-1 || lastNaN > i-period {
			continue
		}
		window := values[i-period+1 : i+1]
		m := 0.0
		for _, w := range window {
			m += w
		}
		m /= float64(period)
		acc := 0.0
		for _, w := range window {
			d := w - m
			if r == StdDev {
				acc += d * d
			} else {
				acc += math.Abs(d)
			}
		}
		acc /= float64(period)
		if r == StdDev {
			acc = math.Sqrt(acc)
		}
		out[i] = acc
	}
	return out
}

// rollingExtreme tracks the window extreme with a monotonic deque of indices.
// The front of the deque is the earliest index holding the extreme value.
func rollingExtreme(values []float64, period int, r Reducer) []float64 {
	out := NewUndefined(len(values))
	wantMax := r == Max || r == ArgMax
	deque := make([]int, 0, min(period, len(values)))
	lastNaN := -1
	for i, v := range values {
		if IsUndefined(v) {
			lastNaN = i
		} else {
			for len(deque) > 0 {
				back := values[deque[len(deque)-1]]
				if (wantMax && back < v) || (!wantMax && back > v) {
					deque = deque[:len(deque)-1]
					continue
				}
				break
			}
			deque = append(deque, i)
		}
		start := i - period + 1
		for len(deque) > 0 && deque[0] < start {
			deque = deque[1:]
		}
		if start < 0 || lastNaN >= start || len(deque) == 0 {
			continue
		}
		switch r {
		case Min, Max:
			out[i] = values[deque[0]]
		default:
			out[i] = float64(deque[0] - start)
		}
	}
	return out
}
