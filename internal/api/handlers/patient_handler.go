package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// PatientService defines the interface for patient roster operations
type PatientService interface {
	RegisterPatient(ctx context.Context, firstName, lastName string, nationalID, age int, provider entities.InsuranceProvider) (*entities.Patient, error)
	Patients() []entities.Patient
}

// PatientHandler handles patient requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type registerPatientRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID int    `json:"national_id"`
	Age        int    `json:"age"`
	Provider   string `json:"insurance_provider"`
}

// RegisterPatient handles POST /api/patients
func (h *PatientHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req registerPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient, err := h.service.RegisterPatient(
		r.Context(),
		req.FirstName,
		req.LastName,
		req.NationalID,
		req.Age,
		entities.InsuranceProvider(req.Provider),
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, patient)
}

// ListPatients handles GET /api/patients
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients := h.service.Patients()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}
