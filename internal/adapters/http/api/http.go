// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/setterboard/internal/adapters/source"
	service "github.com/okian/setterboard/internal/app"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/types"
	"github.com/okian/setterboard/internal/domain/window"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReportDependencies
	OfferDependencies
}

// Report mirrors the read shape returned by report computations.
type Report = types.Report

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	reportHandler *ReportHandler
	offersHandler *OffersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		reportHandler: NewReportHandler(deps),
		offersHandler: NewOffersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /ranges", MetricsMiddleware(s.statsHandler.HandleRanges, "ranges"))

	mux.HandleFunc("POST /report", MetricsMiddleware(s.reportHandler.HandleCompute, "report"))
	mux.HandleFunc("GET /offers/{id}/report", MetricsMiddleware(s.reportHandler.HandleOfferReport, "offer_report"))

	mux.HandleFunc("GET /offers", MetricsMiddleware(s.offersHandler.HandleList, "offers"))
	mux.HandleFunc("POST /offers", MetricsMiddleware(s.offersHandler.HandleSave, "offers"))
	mux.HandleFunc("POST /offers/demo", MetricsMiddleware(s.offersHandler.HandleLoadDemo, "offers_demo"))
	mux.HandleFunc("GET /offers/{id}", MetricsMiddleware(s.offersHandler.HandleGet, "offer"))
	mux.HandleFunc("DELETE /offers/{id}", MetricsMiddleware(s.offersHandler.HandleDelete, "offer"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err and writes the matching status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidOffer):
		return http.StatusBadRequest, "invalid_offer"
	case errors.Is(err, service.ErrInvalidWindow), errors.Is(err, window.ErrUnknownRange):
		return http.StatusBadRequest, "invalid_window"
	case errors.Is(err, source.ErrMissingCredentials):
		return http.StatusBadRequest, "missing_credentials"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, source.ErrStatus),
		errors.Is(err, source.ErrFetch),
		errors.Is(err, source.ErrDecode):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

const (
	keyMask          = "****"
	keyVisibleSuffix = 4
)

// maskOffer returns o as shown to clients, with the API key hidden.
func maskOffer(o model.Offer) model.Offer {
	if len(o.APIKey) <= keyVisibleSuffix {
		o.APIKey = keyMask
		return o
	}
	o.APIKey = keyMask + o.APIKey[len(o.APIKey)-keyVisibleSuffix:]
	return o
}

// isMasked reports whether key is a value produced by maskOffer.
func isMasked(key string) bool {
	return strings.HasPrefix(key, keyMask)
}
