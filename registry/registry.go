// Package registry maps indicator identifiers to handlers with a parameter
// schema and dispatches validated computations.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/evdnx/gotix/indicator/core"
)

// ErrUnknownIndicator is returned for identifiers with no registered handler.
var ErrUnknownIndicator = fmt.Errorf("%w: unknown indicator", core.ErrInvalidParameter)

// ComputeFunc runs an indicator over a series with resolved parameters.
type ComputeFunc func(s core.Series, p Params) (*core.Result, error)

// Handler is one registered indicator.
type Handler struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
	Compute     ComputeFunc `json:"-"`
}

// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[string]Handler
	overrides map[string]Params
}

func New() *Registry {
	return &Registry{
		handlers:  make(map[string]Handler),
		overrides: make(map[string]Params),
	}
}

// Register adds h. Identifiers must be unique, integer parameters must be
// bounded and every default must pass its own spec.
func (r *Registry) Register(h Handler) error {
	if h.ID == "" {
		return errors.New("registry: handler id is empty")
	}
	if h.Compute == nil {
		return fmt.Errorf("registry: handler %q has no compute function", h.ID)
	}
	for _, ps := range h.Params {
		if ps.Kind == Int && ps.Max == 0 {
			return fmt.Errorf("registry: handler %q parameter %q has no upper bound", h.ID, ps.Name)
		}
		if _, err := ps.check(ps.Default); err != nil {
			return fmt.Errorf("registry: handler %q default for %q: %v", h.ID, ps.Name, err)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[h.ID]; dup {
		return fmt.Errorf("registry: handler %q already registered", h.ID)
	}
	r.handlers[h.ID] = h
	return nil
}

// Lookup returns the handler registered under id.
func (r *Registry) Lookup(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}

// List returns every handler ordered by identifier.
func (r *Registry) List() []Handler {
	r.mu.RLock()
	out := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetDefaults replaces the default values of id's parameters. The overrides
// are validated exactly like call-time parameters.
func (r *Registry) SetDefaults(id string, raw map[string]any) error {
	h, ok := r.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, id)
	}
	p, err := resolve(id, h.Params, nil, raw)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.overrides[id] = p
	r.mu.Unlock()
	return nil
}

// Resolve validates raw call parameters for id and fills in defaults.
func (r *Registry) Resolve(id string, raw map[string]any) (Params, error) {
	h, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, id)
	}
	r.mu.RLock()
	base := r.overrides[id]
	r.mu.RUnlock()
	return resolve(id, h.Params, base, raw)
}
