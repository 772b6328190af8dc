package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
)

// maxReportBody bounds inline row uploads.
const maxReportBody = 16 << 20

// ReportDependencies defines the interface for report computations.
type ReportDependencies interface {
	Compute(ctx context.Context, rows []model.RawRow, mapping model.FieldMap, win window.Window) (Report, error)
	Report(ctx context.Context, offerID string, win window.Window) (Report, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// reportRequest mirrors the OpenAPI schema for POST /report.
type reportRequest struct {
	Rows    []model.RawRow `json:"rows"`
	Mapping model.FieldMap `json:"mapping"`
	window.Window
}

// HandleCompute handles POST /report requests.
func (h *ReportHandler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "api.compute_report"
	var req reportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBody))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Compute(r.Context(), req.Rows, req.Mapping, req.Window)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleOfferReport handles GET /offers/{id}/report?range=&start=&end=
// requests.
func (h *ReportHandler) HandleOfferReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.offer_report"
	win, err := windowFromQuery(r)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Report(r.Context(), r.PathValue("id"), win)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func windowFromQuery(r *http.Request) (window.Window, error) {
	q := r.URL.Query()
	win := window.Window{Range: window.Range(q.Get("range"))}
	var err error
	if win.Start, err = dateParam(q.Get("start")); err != nil {
		return window.Window{}, fmt.Errorf("start: %w", err)
	}
	if win.End, err = dateParam(q.Get("end")); err != nil {
		return window.Window{}, fmt.Errorf("end: %w", err)
	}
	return win, nil
}

// dateParam parses a YYYY-MM-DD query value; empty means absent.
func dateParam(s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return model.Date{}, fmt.Errorf("want YYYY-MM-DD: %w", err)
	}
	return model.DateOf(t), nil
}
