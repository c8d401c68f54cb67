package registry

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/evdnx/gotix/indicator/core"
)

// ParamKind is the numeric type a parameter accepts.
type ParamKind int

const (
	Int ParamKind = iota
	Float
)

func (k ParamKind) String() string {
	if k == Float {
		return "float"
	}
	return "int"
}

// MarshalText lets schemas print the kind by name.
func (k ParamKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// MaxPeriod bounds every integer window and shift parameter. It matches the
// default bar limit of the HTTP server.
const MaxPeriod = 100_000

// ParamSpec describes one tunable parameter of an indicator. Max == 0 means
// the parameter has no upper bound, which Register only accepts for Float
// parameters.
type ParamSpec struct {
	Name         string    `json:"name"`
	Kind         ParamKind `json:"kind"`
	Default      float64   `json:"default"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max,omitempty"`
	ExclusiveMin bool      `json:"exclusive_min,omitempty"`
	Description  string    `json:"description,omitempty"`
}

func intParam(name string, def int, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: Int, Default: float64(def), Min: 1, Max: MaxPeriod, Description: desc}
}

func floatParam(name string, def float64, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: Float, Default: def, Min: 0, ExclusiveMin: true, Description: desc}
}

// check coerces a raw value and validates it against its ParamSpec.
func (ps ParamSpec) check(raw any) (float64, error) {
	v, err := toFloat(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be finite, got %v", v)
	}
	if ps.Kind == Int && v != math.Trunc(v) {
		return 0, fmt.Errorf("must be an integer, got %v", v)
	}
	if ps.ExclusiveMin && v <= ps.Min {
		return 0, fmt.Errorf("must be greater than %v, got %v", ps.Min, v)
	}
	if !ps.ExclusiveMin && v < ps.Min {
		return 0, fmt.Errorf("must be at least %v, got %v", ps.Min, v)
	}
	if ps.Max != 0 && v > ps.Max {
		return 0, fmt.Errorf("must be at most %v, got %v", ps.Max, v)
	}
	return v, nil
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as a number", x)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Params holds resolved parameter values keyed by name.
type Params map[string]float64

func (p Params) Int(name string) int { return int(p[name]) }

func (p Params) Float(name string) float64 { return p[name] }

// ParamError reports a parameter that failed validation. It wraps
// core.ErrInvalidParameter.
type ParamError struct {
	Indicator string
	Param     string
	Reason    string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: parameter %q: %s", e.Indicator, e.Param, e.Reason)
}

func (e *ParamError) Unwrap() error { return core.ErrInvalidParameter }

// ParseParams turns "name" → "value" strings from a command line or query
// string into a raw parameter map for Resolve.
func ParseParams(raw map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("%w: empty parameter name", core.ErrInvalidParameter)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// resolve validates raw values against the ParamSpecs on top of base values.
func resolve(id string, specs []ParamSpec, base Params, raw map[string]any) (Params, error) {
	out := make(Params, len(specs))
	for _, ps := range specs {
		out[ps.Name] = ps.Default
		if v, ok := base[ps.Name]; ok {
			out[ps.Name] = v
		}
	}
	names := make([]string, 0, len(raw))
	for k := range raw {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		ps, ok := findSpec(specs, name)
		if !ok {
			return nil, &ParamError{Indicator: id, Param: name, Reason: "unknown parameter"}
		}
		v, err := ps.check(raw[name])
		if err != nil {
			return nil, &ParamError{Indicator: id, Param: name, Reason: err.Error()}
		}
		out[name] = v
	}
	return out, nil
}

func findSpec(specs []ParamSpec, name string) (ParamSpec, bool) {
	for _, ps := range specs {
		if ps.Name == name {
			return ps, true
		}
	}
	return ParamSpec{}, false
}
