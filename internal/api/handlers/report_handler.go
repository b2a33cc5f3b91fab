package handlers

import (
	"context"
	"net/http"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// ReportService defines the interface for read-only roster reports
type ReportService interface {
	WaitingList(ctx context.Context) []entities.WaitingEntry
	SpecialtyDemand(ctx context.Context) []entities.SpecialtyCount
	LeastRequestedSpecialty(ctx context.Context) (entities.Specialty, error)
}

// ReportHandler handles reporting requests
type ReportHandler struct {
	service ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// WaitingList handles GET /api/reports/waiting-list
func (h *ReportHandler) WaitingList(w http.ResponseWriter, r *http.Request) {
	entries := h.service.WaitingList(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"waiting": entries,
		"count":   len(entries),
	})
}

// LeastRequested handles GET /api/reports/least-requested
func (h *ReportHandler) LeastRequested(w http.ResponseWriter, r *http.Request) {
	specialty, err := h.service.LeastRequestedSpecialty(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"least_requested": specialty,
		"demand":          h.service.SpecialtyDemand(r.Context()),
	})
}
