package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/api/handlers"
	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

func TestReportHandler_WaitingList(t *testing.T) {
	service := new(MockReportService)
	service.On("WaitingList", mock.Anything).Return([]entities.WaitingEntry{
		{
			Patient:     entities.Patient{ID: 1, FirstName: "Ana"},
			Appointment: entities.Appointment{PatientID: 1, Specialty: entities.SpecialtyPsicologia, Status: entities.AppointmentStatusActive},
		},
	})

	handler := handlers.NewReportHandler(service)

	req := httptest.NewRequest("GET", "/api/reports/waiting-list", nil)
	w := httptest.NewRecorder()

	handler.WaitingList(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Waiting []entities.WaitingEntry `json:"waiting"`
		Count   int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Ana", response.Waiting[0].Patient.FirstName)
}

func TestReportHandler_LeastRequested(t *testing.T) {
	service := new(MockReportService)
	service.On("LeastRequestedSpecialty", mock.Anything).Return(entities.SpecialtyPsicologia, nil)
	service.On("SpecialtyDemand", mock.Anything).Return([]entities.SpecialtyCount{
		{Specialty: entities.SpecialtyMedicoClinico, Count: 2},
		{Specialty: entities.SpecialtyOdontologia, Count: 1},
		{Specialty: entities.SpecialtyPsicologia, Count: 0},
		{Specialty: entities.SpecialtyTraumatologia, Count: 1},
	})

	handler := handlers.NewReportHandler(service)

	req := httptest.NewRequest("GET", "/api/reports/least-requested", nil)
	w := httptest.NewRecorder()

	handler.LeastRequested(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		LeastRequested entities.Specialty        `json:"least_requested"`
		Demand         []entities.SpecialtyCount `json:"demand"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.SpecialtyPsicologia, response.LeastRequested)
	assert.Len(t, response.Demand, 4)
}
