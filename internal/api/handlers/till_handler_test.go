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
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

func TestTillHandler_CollectPayments(t *testing.T) {
	service := new(MockTillService)
	service.On("CollectPayments", mock.Anything).Return(4880.0)
	service.On("TotalCollected").Return(9360.0)

	handler := handlers.NewTillHandler(service)

	req := httptest.NewRequest("POST", "/api/payments/collect", nil)
	w := httptest.NewRecorder()

	handler.CollectPayments(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]float64
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.InDelta(t, 4880.0, response["collected"], 1e-9)
	assert.InDelta(t, 9360.0, response["total_collected"], 1e-9)
}

func TestTillHandler_CloseTill(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := new(MockTillService)
		service.On("CloseTill", mock.Anything).Return(9360.0, nil)

		handler := handlers.NewTillHandler(service)

		req := httptest.NewRequest("POST", "/api/till/close", nil)
		w := httptest.NewRecorder()

		handler.CloseTill(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]float64
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.InDelta(t, 9360.0, response["total_collected"], 1e-9)
	})

	t.Run("pending appointments map to 409", func(t *testing.T) {
		service := new(MockTillService)
		service.On("CloseTill", mock.Anything).
			Return(0.0, apperrors.NewConflictError("3 appointments still unpaid or untreated", apperrors.ErrPendingAppointments))

		handler := handlers.NewTillHandler(service)

		req := httptest.NewRequest("POST", "/api/till/close", nil)
		w := httptest.NewRecorder()

		handler.CloseTill(w, req)

		require.Equal(t, http.StatusConflict, w.Code)

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "3 appointments still unpaid or untreated", response["error"])
	})
}
