package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/registry"
	"github.com/evdnx/gotix/suite"
)

type computeRequest struct {
	Bars   []core.Bar     `json:"bars"`
	Params map[string]any `json:"params,omitempty"`
}

type batchRequest struct {
	Bars     []core.Bar      `json:"bars"`
	Requests []suite.Request `json:"requests"`
}

type batchResponse struct {
	Results map[string]*core.Result `json:"results"`
	Errors  map[string]string       `json:"errors,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.Registry().List())
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h, ok := s.dispatcher.Registry().Lookup(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown indicator %q", id))
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.dispatcher.Registry().Lookup(id); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown indicator %q", id))
		return
	}

	var req computeRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	series, status, err := s.series(req.Bars)
	if err != nil {
		writeError(w, r, status, err.Error())
		return
	}

	res, err := s.dispatcher.Compute(id, series, req.Params)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Requests) == 0 {
		writeError(w, r, http.StatusBadRequest, "requests must not be empty")
		return
	}
	if len(req.Requests) > s.maxRequests {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("too many requests: %d, limit is %d", len(req.Requests), s.maxRequests))
		return
	}
	seen := make(map[string]bool, len(req.Requests))
	for _, q := range req.Requests {
		key := q.Key
		if key == "" {
			key = q.Indicator
		}
		if seen[key] {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("duplicate request key %q", key))
			return
		}
		seen[key] = true
	}

	series, status, err := s.series(req.Bars)
	if err != nil {
		writeError(w, r, status, err.Error())
		return
	}

	outcomes, err := suite.Run(r.Context(), s.dispatcher, series, req.Requests, suite.WithWorkers(s.workers))
	if err != nil {
		// the client went away
		s.logger.Warn("batch cancelled", "request_id", RequestID(r.Context()), "err", err)
		return
	}

	resp := batchResponse{Results: make(map[string]*core.Result, len(outcomes))}
	for _, oc := range outcomes {
		if oc.Err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[oc.Key] = oc.Err.Error()
			continue
		}
		resp.Results[oc.Key] = oc.Result
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func (s *Server) series(bars []core.Bar) (core.Series, int, error) {
	if len(bars) > s.maxBars {
		return core.Series{}, http.StatusRequestEntityTooLarge,
			fmt.Errorf("too many bars: %d, limit is %d", len(bars), s.maxBars)
	}
	series, err := core.NewSeries(bars)
	if err != nil {
		return core.Series{}, statusFor(err), err
	}
	return series, http.StatusOK, nil
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnknownIndicator):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidSeries):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}
