package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	BookAppointment(ctx context.Context, patientID int, specialty entities.Specialty) (*entities.Appointment, error)
	SortAppointments(ctx context.Context, criterion entities.SortCriterion) error
	TreatNext(ctx context.Context, maxCount int) []entities.Appointment
	Appointments() []entities.Appointment
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	PatientID int    `json:"patient_id"`
	Specialty string `json:"specialty"`
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.BookAppointment(r.Context(), req.PatientID, entities.Specialty(req.Specialty))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

type sortAppointmentsRequest struct {
	Criterion string `json:"criterion"`
}

// SortAppointments handles POST /api/appointments/sort
func (h *AppointmentHandler) SortAppointments(w http.ResponseWriter, r *http.Request) {
	var req sortAppointmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.SortAppointments(r.Context(), entities.SortCriterion(req.Criterion)); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "sorted"})
}

type treatNextRequest struct {
	MaxCount int `json:"max_count"`
}

// TreatNext handles POST /api/appointments/treat
func (h *AppointmentHandler) TreatNext(w http.ResponseWriter, r *http.Request) {
	var req treatNextRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	treated := h.service.TreatNext(r.Context(), req.MaxCount)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treated": treated,
		"count":   len(treated),
	})
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments := h.service.Appointments()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}
