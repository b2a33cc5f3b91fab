package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/domain/providers"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
)

// DefaultTreatBatch is how many active appointments one TreatNext call
// moves to Treated when no explicit count is given.
const DefaultTreatBatch = 2

// LedgerService owns the in-memory roster: every registered patient, every
// appointment in booking order, the sequential patient ID counter and the
// running till total. All mutations are serialized behind one mutex so the
// roster invariants hold when the service is driven concurrently over HTTP.
type LedgerService struct {
	mu sync.Mutex

	clinicName string
	pricing    *PricingService
	catalog    *entities.SpecialtyCatalog
	snapshots  repositories.SnapshotRepository
	bus        providers.EventBus

	patients       []entities.Patient
	appointments   []entities.Appointment
	nextPatientID  int
	totalCollected float64
}

// NewLedgerService creates a ledger with an empty roster. bus may be nil;
// events are then skipped.
func NewLedgerService(
	clinicName string,
	pricing *PricingService,
	catalog *entities.SpecialtyCatalog,
	snapshots repositories.SnapshotRepository,
	bus providers.EventBus,
) *LedgerService {
	return &LedgerService{
		clinicName:    clinicName,
		pricing:       pricing,
		catalog:       catalog,
		snapshots:     snapshots,
		bus:           bus,
		nextPatientID: 1,
	}
}

// ClinicName returns the clinic's trading name.
func (s *LedgerService) ClinicName() string {
	return s.clinicName
}

// LoadSnapshot replaces the roster with the last persisted snapshot and
// rehydrates the patient ID counter. A missing snapshot yields an empty
// roster.
func (s *LedgerService) LoadSnapshot(ctx context.Context) error {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.patients = append([]entities.Patient(nil), snapshot.Patients...)
	s.appointments = append([]entities.Appointment(nil), snapshot.Appointments...)

	maxID := 0
	for _, p := range s.patients {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	s.nextPatientID = maxID + 1

	log.Info().
		Int("patients", len(s.patients)).
		Int("appointments", len(s.appointments)).
		Msg("roster snapshot loaded")
	return nil
}

// Patients returns a copy of the patient roster in registration order.
func (s *LedgerService) Patients() []entities.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Patient(nil), s.patients...)
}

// Appointments returns a copy of the appointment sequence in roster order.
func (s *LedgerService) Appointments() []entities.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Appointment(nil), s.appointments...)
}

// TotalCollected returns the revenue collected so far this session.
func (s *LedgerService) TotalCollected() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCollected
}

// snapshotLocked builds a snapshot of the current roster. Callers must hold
// the mutex.
func (s *LedgerService) snapshotLocked() *entities.Snapshot {
	return &entities.Snapshot{
		Patients:     append([]entities.Patient(nil), s.patients...),
		Appointments: append([]entities.Appointment(nil), s.appointments...),
	}
}

// findPatientLocked returns the index of the patient with the given ID, or
// -1. Callers must hold the mutex.
func (s *LedgerService) findPatientLocked(id int) int {
	for i := range s.patients {
		if s.patients[i].ID == id {
			return i
		}
	}
	return -1
}

// publish sends a ledger event if a bus is wired, logging failures instead
// of propagating them.
func (s *LedgerService) publish(ctx context.Context, event *entities.LedgerEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, providers.EventChannelLedger, event); err != nil {
		log.Warn().Err(err).Str("event_type", string(event.Type)).Msg("failed to publish ledger event")
	}
}
