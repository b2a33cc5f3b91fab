package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/api/handlers"
	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

func TestPatientHandler_RegisterPatient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := new(MockPatientService)
		service.On("RegisterPatient", mock.Anything, "Ana", "Gomez", 30111222, 34, entities.ProviderSwissMedical).
			Return(&entities.Patient{
				ID:         1,
				FirstName:  "Ana",
				LastName:   "Gomez",
				NationalID: 30111222,
				Age:        34,
				Provider:   entities.ProviderSwissMedical,
			}, nil)

		handler := handlers.NewPatientHandler(service)

		body := `{"first_name":"Ana","last_name":"Gomez","national_id":30111222,"age":34,"insurance_provider":"Swiss Medical"}`
		req := httptest.NewRequest("POST", "/api/patients", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.RegisterPatient(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var patient entities.Patient
		require.NoError(t, json.NewDecoder(w.Body).Decode(&patient))
		assert.Equal(t, 1, patient.ID)
		assert.Equal(t, entities.ProviderSwissMedical, patient.Provider)
		service.AssertExpectations(t)
	})

	t.Run("malformed payload", func(t *testing.T) {
		handler := handlers.NewPatientHandler(new(MockPatientService))

		req := httptest.NewRequest("POST", "/api/patients", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.RegisterPatient(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		service := new(MockPatientService)
		service.On("RegisterPatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("age must be between 18 and 90", apperrors.ErrInvalidAge))

		handler := handlers.NewPatientHandler(service)

		body := `{"first_name":"Ana","last_name":"Gomez","national_id":30111222,"age":12,"insurance_provider":"Apres"}`
		req := httptest.NewRequest("POST", "/api/patients", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.RegisterPatient(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "age must be between 18 and 90", response["error"])
	})

	t.Run("duplicate national id maps to 409", func(t *testing.T) {
		service := new(MockPatientService)
		service.On("RegisterPatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewConflictError("a patient with national id 30111222 already exists", apperrors.ErrDuplicateNationalID))

		handler := handlers.NewPatientHandler(service)

		body := `{"first_name":"Ana","last_name":"Gomez","national_id":30111222,"age":34,"insurance_provider":"Apres"}`
		req := httptest.NewRequest("POST", "/api/patients", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.RegisterPatient(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPatientHandler_ListPatients(t *testing.T) {
	service := new(MockPatientService)
	service.On("Patients").Return([]entities.Patient{
		{ID: 1, FirstName: "Ana"},
		{ID: 2, FirstName: "Luis"},
	})

	handler := handlers.NewPatientHandler(service)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	w := httptest.NewRecorder()

	handler.ListPatients(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Patients []entities.Patient `json:"patients"`
		Count    int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Patients, 2)
}
