package entities

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventType classifies roster mutations announced on the event bus.
type LedgerEventType string

const (
	EventPatientRegistered LedgerEventType = "patient.registered"
	EventAppointmentBooked LedgerEventType = "appointment.booked"
	EventTillClosed        LedgerEventType = "till.closed"
)

// LedgerEvent is a best-effort notification that the roster changed.
// Subscribers observe state; they never drive it.
type LedgerEvent struct {
	ID         string          `json:"id"`
	Type       LedgerEventType `json:"type"`
	PatientID  int             `json:"patient_id,omitempty"`
	Specialty  Specialty       `json:"specialty,omitempty"`
	Amount     float64         `json:"amount,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewLedgerEvent creates an event with a fresh ID and timestamp.
func NewLedgerEvent(eventType LedgerEventType) *LedgerEvent {
	return &LedgerEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now(),
	}
}
