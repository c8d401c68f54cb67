package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// ResultKind tells which payload of a Result is populated.
type ResultKind int

const (
	KindSeries   ResultKind = iota // named numeric series aligned with the input
	KindLabels                     // named categorical series aligned with the input
	KindSnapshot                   // named scalar map
)

func (k ResultKind) String() string {
	switch k {
	case KindSeries:
		return "series"
	case KindLabels:
		return "labels"
	case KindSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Result is the output of one indicator computation. Series and label outputs
// have exactly one entry per input bar.
type Result struct {
	Indicator string
	Kind      ResultKind
	Times     []time.Time

	Names  []string // output order for Series/Labels
	Series map[string][]float64
	Labels map[string][]string

	Keys   []string // output order for Values
	Values map[string]float64
}

// NewSeriesResult builds a KindSeries result. Outputs are added in order
// with Add.
func NewSeriesResult(indicator string, s Series) *Result {
	return &Result{
		Indicator: indicator,
		Kind:      KindSeries,
		Times:     s.Times(),
		Series:    make(map[string][]float64),
	}
}

// NewLabelResult builds a KindLabels result.
func NewLabelResult(indicator string, s Series) *Result {
	return &Result{
		Indicator: indicator,
		Kind:      KindLabels,
		Times:     s.Times(),
		Labels:    make(map[string][]string),
	}
}

// NewSnapshotResult builds a KindSnapshot result.
func NewSnapshotResult(indicator string) *Result {
	return &Result{
		Indicator: indicator,
		Kind:      KindSnapshot,
		Values:    make(map[string]float64),
	}
}

// Add appends a named numeric series. It panics if the length does not match
// the input, which would be a programming error in an indicator.
func (r *Result) Add(name string, values []float64) *Result {
	if len(values) != len(r.Times) {
		panic(fmt.Sprintf("%s: output %q has %d values for %d bars", r.Indicator, name, len(values), len(r.Times)))
	}
	r.Names = append(r.Names, name)
	r.Series[name] = values
	return r
}

// AddLabels appends a named categorical series.
func (r *Result) AddLabels(name string, labels []string) *Result {
	if len(labels) != len(r.Times) {
		panic(fmt.Sprintf("%s: output %q has %d labels for %d bars", r.Indicator, name, len(labels), len(r.Times)))
	}
	r.Names = append(r.Names, name)
	r.Labels[name] = labels
	return r
}

// Set stores a named scalar.
func (r *Result) Set(key string, v float64) *Result {
	if _, ok := r.Values[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = v
	return r
}

// Get returns a defensive copy of the named numeric series.
func (r *Result) Get(name string) ([]float64, bool) {
	v, ok := r.Series[name]
	return copySlice(v), ok
}

// Len returns the number of aligned positions (0 for snapshots).
func (r *Result) Len() int { return len(r.Times) }

// PlotData lays out numeric series for charting or CSV export. Snapshot values
// become one single-point entry per key; label results produce no plot data.
func (r *Result) PlotData() []PlotData {
	switch r.Kind {
	case KindSeries:
		x := make([]float64, len(r.Times))
		ts := make([]int64, len(r.Times))
		for i, t := range r.Times {
			x[i] = float64(i)
			ts[i] = t.Unix()
		}
		plots := make([]PlotData, 0, len(r.Names))
		for _, name := range r.Names {
			plots = append(plots, PlotData{
				Name:      name,
				X:         x,
				Y:         copySlice(r.Series[name]),
				Type:      "line",
				Timestamp: ts,
			})
		}
		return plots
	case KindSnapshot:
		plots := make([]PlotData, 0, len(r.Keys))
		for _, k := range r.Keys {
			plots = append(plots, PlotData{
				Name: k,
				X:    []float64{0},
				Y:    []float64{r.Values[k]},
				Type: "level",
			})
		}
		return plots
	default:
		return nil
	}
}

type seriesJSON struct {
	Indicator  string                 `json:"indicator"`
	Timestamps []time.Time            `json:"timestamps"`
	Series     map[string][]NullFloat `json:"series,omitempty"`
	Labels     map[string][]string    `json:"labels,omitempty"`
}

// MarshalJSON writes series and label results as one array per output next
// to the timestamps, and snapshots as a flat key/value object. Undefined
// values become null.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Kind == KindSnapshot {
		flat := make(map[string]NullFloat, len(r.Values))
		for k, v := range r.Values {
			flat[k] = NullFloat(v)
		}
		return json.Marshal(flat)
	}
	out := seriesJSON{
		Indicator:  r.Indicator,
		Timestamps: r.Times,
	}
	if out.Timestamps == nil {
		out.Timestamps = []time.Time{}
	}
	if r.Kind == KindSeries {
		out.Series = make(map[string][]NullFloat, len(r.Series))
		for name, values := range r.Series {
			out.Series[name] = NullFloats(values)
		}
	} else {
		out.Labels = r.Labels
	}
	return json.Marshal(out)
}
