package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// TreatNext moves up to maxCount active appointments to Treated, in roster
// order. A non-positive maxCount falls back to DefaultTreatBatch. An empty
// result is not an error: there was simply nobody waiting.
func (s *LedgerService) TreatNext(ctx context.Context, maxCount int) []entities.Appointment {
	if maxCount <= 0 {
		maxCount = DefaultTreatBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	treated := make([]entities.Appointment, 0, maxCount)
	for i := range s.appointments {
		if len(treated) == maxCount {
			break
		}
		if s.appointments[i].Status != entities.AppointmentStatusActive {
			continue
		}
		s.appointments[i].Status = entities.AppointmentStatusTreated
		treated = append(treated, s.appointments[i])
	}

	log.Info().Int("treated", len(treated)).Msg("treated next appointments")
	return treated
}

// CollectPayments moves every Treated appointment to Paid, adds each frozen
// amount to the till total and returns the sum collected by this call.
func (s *LedgerService) CollectPayments(ctx context.Context) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var collected float64
	for i := range s.appointments {
		if s.appointments[i].Status != entities.AppointmentStatusTreated {
			continue
		}
		s.appointments[i].Status = entities.AppointmentStatusPaid
		collected += s.appointments[i].AmountDue
	}
	s.totalCollected += collected

	log.Info().Float64("collected", collected).Float64("total", s.totalCollected).Msg("payments collected")
	return collected
}

// CloseTill finalizes the session's revenue. It fails while any appointment
// is still Active or Treated; on success it persists the roster snapshot
// and returns the total collected.
func (s *LedgerService) CloseTill(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := 0
	for i := range s.appointments {
		switch s.appointments[i].Status {
		case entities.AppointmentStatusActive, entities.AppointmentStatusTreated:
			pending++
		}
	}
	if pending > 0 {
		return 0, apperrors.NewConflictError(
			fmt.Sprintf("%d appointments still unpaid or untreated", pending),
			apperrors.ErrPendingAppointments,
		)
	}

	if err := s.snapshots.Save(ctx, s.snapshotLocked()); err != nil {
		return 0, err
	}

	log.Info().Float64("total_collected", s.totalCollected).Msg("till closed")

	event := entities.NewLedgerEvent(entities.EventTillClosed)
	event.Amount = s.totalCollected
	s.publish(ctx, event)

	return s.totalCollected, nil
}
