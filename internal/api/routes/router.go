package routes

import (
	"net/http"

	"github.com/clinicdesk/clinic-ledger/internal/api/handlers"
	"github.com/clinicdesk/clinic-ledger/internal/api/middleware"
	"github.com/clinicdesk/clinic-ledger/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	patientHandler     *handlers.PatientHandler
	appointmentHandler *handlers.AppointmentHandler
	tillHandler        *handlers.TillHandler
	reportHandler      *handlers.ReportHandler
	eventHandler       *handlers.EventStreamHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	tillHandler *handlers.TillHandler,
	reportHandler *handlers.ReportHandler,
	eventHandler *handlers.EventStreamHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		tillHandler:        tillHandler,
		reportHandler:      reportHandler,
		eventHandler:       eventHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Patient endpoints
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.RegisterPatient)
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments/sort", r.appointmentHandler.SortAppointments)
	r.mux.HandleFunc("POST /api/appointments/treat", r.appointmentHandler.TreatNext)

	// Till endpoints
	r.mux.HandleFunc("POST /api/payments/collect", r.tillHandler.CollectPayments)
	r.mux.HandleFunc("POST /api/till/close", r.tillHandler.CloseTill)

	// Report endpoints
	r.mux.HandleFunc("GET /api/reports/waiting-list", r.reportHandler.WaitingList)
	r.mux.HandleFunc("GET /api/reports/least-requested", r.reportHandler.LeastRequested)

	// Event stream, present only when an event bus is wired
	if r.eventHandler != nil {
		r.mux.HandleFunc("GET /api/events", r.eventHandler.StreamLedgerEvents)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.CORSMiddleware(handler)
	return handler
}
