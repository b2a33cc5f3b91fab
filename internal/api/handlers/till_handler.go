package handlers

import (
	"context"
	"net/http"
)

// TillService defines the interface for payment and till operations
type TillService interface {
	CollectPayments(ctx context.Context) float64
	CloseTill(ctx context.Context) (float64, error)
	TotalCollected() float64
}

// TillHandler handles payment collection and till closing
type TillHandler struct {
	service TillService
}

// NewTillHandler creates a new till handler
func NewTillHandler(service TillService) *TillHandler {
	return &TillHandler{service: service}
}

// CollectPayments handles POST /api/payments/collect
func (h *TillHandler) CollectPayments(w http.ResponseWriter, r *http.Request) {
	collected := h.service.CollectPayments(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]float64{
		"collected":       collected,
		"total_collected": h.service.TotalCollected(),
	})
}

// CloseTill handles POST /api/till/close
func (h *TillHandler) CloseTill(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.CloseTill(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"total_collected": total})
}
