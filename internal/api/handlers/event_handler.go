package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/providers"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 30 * time.Second

// EventStreamHandler streams roster mutation events to observers over
// Server-Sent Events. Observers only watch: nothing they do feeds back into
// the ledger.
type EventStreamHandler struct {
	bus providers.EventBus
}

// NewEventStreamHandler creates a new event stream handler
func NewEventStreamHandler(bus providers.EventBus) *EventStreamHandler {
	return &EventStreamHandler{bus: bus}
}

// StreamLedgerEvents handles GET /api/events
func (h *EventStreamHandler) StreamLedgerEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	eventChan, err := h.bus.Subscribe(r.Context(), providers.EventChannelLedger)
	if err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to ledger events")
		respondWithError(w, http.StatusBadGateway, "event stream unavailable")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, open := <-eventChan:
			if !open {
				return
			}
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// sendEvent writes one SSE frame
func (h *EventStreamHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal stream event")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
