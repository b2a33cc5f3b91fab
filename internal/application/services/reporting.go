package services

import (
	"context"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// WaitingList returns, in roster order, the patients whose appointments are
// still Active.
func (s *LedgerService) WaitingList(ctx context.Context) []entities.WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []entities.WaitingEntry
	for i := range s.appointments {
		if s.appointments[i].Status != entities.AppointmentStatusActive {
			continue
		}
		idx := s.findPatientLocked(s.appointments[i].PatientID)
		if idx < 0 {
			continue
		}
		entries = append(entries, entities.WaitingEntry{
			Patient:     s.patients[idx],
			Appointment: s.appointments[i],
		})
	}
	return entries
}

// SpecialtyDemand counts appointments per catalog specialty, in catalog
// order. Specialties with zero bookings are included.
func (s *LedgerService) SpecialtyDemand(ctx context.Context) []entities.SpecialtyCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.specialtyDemandLocked()
}

func (s *LedgerService) specialtyDemandLocked() []entities.SpecialtyCount {
	counts := make([]entities.SpecialtyCount, 0, s.catalog.Len())
	for _, name := range s.catalog.Specialties() {
		counts = append(counts, entities.SpecialtyCount{Specialty: name})
	}
	for i := range s.appointments {
		for j := range counts {
			if counts[j].Specialty == s.appointments[i].Specialty {
				counts[j].Count++
				break
			}
		}
	}
	return counts
}

// LeastRequestedSpecialty returns the catalog specialty with the fewest
// bookings. Ties go to the specialty seen first in catalog order.
func (s *LedgerService) LeastRequestedSpecialty(ctx context.Context) (entities.Specialty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.specialtyDemandLocked()
	if len(counts) == 0 {
		return "", apperrors.NewInternalError("specialty catalog is empty", nil)
	}

	least := counts[0]
	for _, c := range counts[1:] {
		if c.Count < least.Count {
			least = c
		}
	}
	return least.Specialty, nil
}
