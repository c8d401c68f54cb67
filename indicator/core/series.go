package core

import (
	"fmt"
	"math"
	"time"
)

// Bar is a single OHLCV observation.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// TypicalPrice returns (high+low+close)/3.
func (b Bar) TypicalPrice() float64 { return (b.High + b.Low + b.Close) / 3 }

// MedianPrice returns (high+low)/2.
func (b Bar) MedianPrice() float64 { return (b.High + b.Low) / 2 }

// Series is an immutable, time-ordered sequence of bars. The zero value is an
// empty series.
type Series struct {
	bars []Bar
}

// NewSeries validates bars and returns a Series holding its own copy of them.
// Timestamps must be strictly increasing, prices finite with high >= low and
// volume non-negative.
func NewSeries(bars []Bar) (Series, error) {
	for i, b := range bars {
		if err := validateBar(b); err != nil {
			return Series{}, fmt.Errorf("%w: bar %d: %v", ErrInvalidSeries, i, err)
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return Series{}, fmt.Errorf("%w: bar %d: timestamp %s not after %s",
				ErrInvalidSeries, i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}
	cp := make([]Bar, len(bars))
	copy(cp, bars)
	return Series{bars: cp}, nil
}

// MustSeries is NewSeries for fixtures; it panics on invalid input.
func MustSeries(bars []Bar) Series {
	s, err := NewSeries(bars)
	if err != nil {
		panic(err)
	}
	return s
}

func validateBar(b Bar) error {
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("non-finite price %v", p)
		}
	}
	if b.High < b.Low {
		return fmt.Errorf("high %v below low %v", b.High, b.Low)
	}
	if !IsValidVolume(b.Volume) {
		return fmt.Errorf("invalid volume %v", b.Volume)
	}
	return nil
}

// Len returns the number of bars.
func (s Series) Len() int { return len(s.bars) }

// Bar returns the i-th bar.
func (s Series) Bar(i int) Bar { return s.bars[i] }

// Bars returns a copy of the underlying bars.
func (s Series) Bars() []Bar {
	cp := make([]Bar, len(s.bars))
	copy(cp, s.bars)
	return cp
}

// Last returns the final bar and false when the series is empty.
func (s Series) Last() (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}

// Times returns the bar timestamps.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Time
	}
	return out
}

// Opens returns the open prices.
func (s Series) Opens() []float64 { return s.column(func(b Bar) float64 { return b.Open }) }

// Highs returns the high prices.
func (s Series) Highs() []float64 { return s.column(func(b Bar) float64 { return b.High }) }

// Lows returns the low prices.
func (s Series) Lows() []float64 { return s.column(func(b Bar) float64 { return b.Low }) }

// Closes returns the close prices.
func (s Series) Closes() []float64 { return s.column(func(b Bar) float64 { return b.Close }) }

// Volumes returns the traded volumes.
func (s Series) Volumes() []float64 { return s.column(func(b Bar) float64 { return b.Volume }) }

// TypicalPrices returns (h+l+c)/3 per bar.
func (s Series) TypicalPrices() []float64 { return s.column(Bar.TypicalPrice) }

// MedianPrices returns (h+l)/2 per bar.
func (s Series) MedianPrices() []float64 { return s.column(Bar.MedianPrice) }

func (s Series) column(pick func(Bar) float64) []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = pick(b)
	}
	return out
}
