package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Undefined sentinel
// -----------------------------------------------------------------------------

// Undefined returns the sentinel stored at warm-up and indeterminate positions.
func Undefined() float64 { return math.NaN() }

// IsUndefined reports whether v is the undefined sentinel.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

// NewUndefined returns a slice of n undefined values.
func NewUndefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Ratio returns num/den, or the undefined sentinel when den is zero or either
// operand is undefined.
func Ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}

/* -------------------------------------------------------------------------
   Slice helpers
--------------------------------------------------------------------------*/

func copySlice(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// Map applies f element-wise. Undefined inputs stay undefined.
func Map(values []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = f(v)
	}
	return out
}

// Zip combines two aligned slices element-wise. Undefined on either side
// yields undefined.
func Zip(a, b []float64, f func(x, y float64) float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = f(a[i], b[i])
	}
	return out
}

// Diff returns v[t]-v[t-1]; position 0 is undefined.
func Diff(values []float64) []float64 {
	out := NewUndefined(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

/* -------------------------------------------------------------------------
   Validation helpers
--------------------------------------------------------------------------*/

func isValidVolume(volume float64) bool {
	return volume >= 0 && !math.IsNaN(volume) && !math.IsInf(volume, 0)
}

// IsValidVolume exposes the volume validator.
func IsValidVolume(volume float64) bool { return isValidVolume(volume) }

/* -------------------------------------------------------------------------
   Plotting / tabular output
--------------------------------------------------------------------------*/

// PlotData is one named output laid out for charting or CSV export. Undefined
// values are carried as NaN in Y and written as null/empty by the formatters.
type PlotData struct {
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Type      string    `json:"type,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

type plotJSON struct {
	Name      string      `json:"name"`
	X         []float64   `json:"x"`
	Y         []NullFloat `json:"y"`
	Type      string      `json:"type,omitempty"`
	Timestamp []int64     `json:"timestamp,omitempty"`
}

// FormatPlotDataJSON renders plot data as a JSON array.
func FormatPlotDataJSON(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "[]", nil
	}
	out := make([]plotJSON, 0, len(data))
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		out = append(out, plotJSON{
			Name:      d.Name,
			X:         d.X,
			Y:         NullFloats(d.Y),
			Type:      d.Type,
			Timestamp: d.Timestamp,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data: %w", err)
	}
	return string(b), nil
}

// FormatPlotDataCSV renders plot data as CSV rows. Undefined values are left
// empty.
func FormatPlotDataCSV(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("Name,X,Y,Type,Timestamp\n")
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		for i := 0; i < len(d.X); i++ {
			ts := ""
			if i < len(d.Timestamp) {
				ts = strconv.FormatInt(d.Timestamp[i], 10)
			}
			y := ""
			if !math.IsNaN(d.Y[i]) {
				y = strconv.FormatFloat(d.Y[i], 'f', 6, 64)
			}
			fmt.Fprintf(&sb, "%s,%g,%s,%s,%s\n",
				d.Name, d.X[i], y, d.Type, ts)
		}
	}
	return sb.String(), nil
}

// NullFloat marshals NaN and ±Inf as JSON null.
type NullFloat float64

// MarshalJSON implements json.Marshaler.
func (f NullFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (f *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = NullFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = NullFloat(v)
	return nil
}

// NullFloats converts a float slice for null-aware JSON output.
func NullFloats(values []float64) []NullFloat {
	out := make([]NullFloat, len(values))
	for i, v := range values {
		out[i] = NullFloat(v)
	}
	return out
}
