package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/advisor"
	"github.com/xkilldash9x/scanlens/internal/results"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the envelope every API answer is wrapped in.
type Response struct {
	Status string `json:"status"` // "success" or "error"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ResultList is the payload of GET /api/v1/results.
type ResultList struct {
	Count   int                    `json:"count"`
	Results []results.RankedResult `json:"results"`
}

// RemediationResponse is the payload of POST /api/v1/results/{id}/remediation.
type RemediationResponse struct {
	ResultID               string `json:"result_id"`
	RemediationSuggestions string `json:"remediation_suggestions"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := results.QueryParams{
		From:      values.Get("from"),
		To:        values.Get("to"),
		SortKey:   values.Get("sort"),
		SortDir:   values.Get("dir"),
		Statuses:  values["status"],
		ScanTypes: values["type"],
		MinTier:   values.Get("min_tier"),
		Target:    values.Get("target"),
	}.Build()
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	all, err := s.source.ListScanResults(r.Context())
	if err != nil {
		s.respondWithSourceError(w, "Failed to list scan results.", err)
		return
	}

	ranked := results.Rank(q.Run(all))
	s.respondWithSuccess(w, http.StatusOK, ResultList{Count: len(ranked), Results: ranked})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.respondWithSuccess(w, http.StatusOK, results.Rank([]schemas.ScanResult{*result})[0])
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := s.clock()
	if raw := r.URL.Query().Get("now"); raw != "" {
		t, err := results.ParseTime(raw)
		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		now = t
	}

	d, err := s.dashboard(r.Context(), now)
	if err != nil {
		s.respondWithSourceError(w, "Failed to build dashboard.", err)
		return
	}
	s.respondWithSuccess(w, http.StatusOK, d)
}

func (s *Server) handleSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.source.ListScheduledScans(r.Context())
	if err != nil {
		s.respondWithSourceError(w, "Failed to list scheduled scans.", err)
		return
	}
	s.respondWithSuccess(w, http.StatusOK, schedules)
}

// handleSummary always answers 200 once the result exists: summarizer failures
// are reported inside the ScanSummary, next to the stored fallback.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Scan analysis is not configured.")
		return
	}
	result, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.respondWithSuccess(w, http.StatusOK, s.summarizer.ReportFor(r.Context(), *result))
}

func (s *Server) handleRemediation(w http.ResponseWriter, r *http.Request) {
	if s.remediator == nil {
		s.respondWithError(w, http.StatusServiceUnavailable, "Remediation suggestions are not configured.")
		return
	}
	result, ok := s.lookup(w, r)
	if !ok {
		return
	}

	out, err := s.remediator.SuggestFor(r.Context(), *result)
	if err != nil {
		status := http.StatusBadGateway
		var inputErr *advisor.InputError
		if errors.As(err, &inputErr) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("Remediation request failed.", zap.String("result_id", result.ID), zap.Int("status", status), zap.Error(err))
		s.respondWithError(w, status, advisor.UserMessage(err))
		return
	}
	s.respondWithSuccess(w, http.StatusOK, RemediationResponse{
		ResultID:               result.ID,
		RemediationSuggestions: out.RemediationSuggestions,
	})
}

// lookup fetches the result named by the {id} URL parameter, answering 404
// itself when it does not exist.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*schemas.ScanResult, bool) {
	id := chi.URLParam(r, "id")
	result, err := s.source.GetScanResult(r.Context(), id)
	if err != nil {
		s.respondWithSourceError(w, "Failed to load scan result.", err)
		return nil, false
	}
	return result, true
}

func (s *Server) dashboard(ctx context.Context, now time.Time) (schemas.Dashboard, error) {
	all, err := s.source.ListScanResults(ctx)
	if err != nil {
		return schemas.Dashboard{}, err
	}
	return results.Aggregate(all, now), nil
}

// respondWithSourceError maps result source errors onto HTTP statuses.
func (s *Server) respondWithSourceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, schemas.ErrNotFound):
		s.respondWithError(w, http.StatusNotFound, "Scan result not found.")
	case errors.Is(err, schemas.ErrInvalidArgument):
		s.logger.Error(msg, zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Stored scan data is invalid.")
	default:
		s.logger.Error(msg, zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, msg)
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, statusCode int, message string) {
	s.respond(w, statusCode, Response{Status: "error", Error: message})
}

func (s *Server) respondWithSuccess(w http.ResponseWriter, statusCode int, data any) {
	s.respond(w, statusCode, Response{Status: "success", Data: data})
}

func (s *Server) respond(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
