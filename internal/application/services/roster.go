package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// RegisterPatient validates and registers a new patient. Preconditions are
// checked in order: names, age, provider-for-age, national ID uniqueness.
// On success the patient gets the next sequential ID and today's date.
func (s *LedgerService) RegisterPatient(
	ctx context.Context,
	firstName, lastName string,
	nationalID, age int,
	provider entities.InsuranceProvider,
) (*entities.Patient, error) {
	if !entities.ValidName(firstName) || !entities.ValidName(lastName) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("names must be alphabetic and at most %d characters", entities.MaxNameLength),
			apperrors.ErrInvalidName,
		)
	}
	if !entities.ValidAge(age) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("age must be between %d and %d", entities.MinPatientAge, entities.MaxPatientAge),
			apperrors.ErrInvalidAge,
		)
	}
	if !provider.ValidForAge(age) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("provider %q is not valid for age %d", provider, age),
			apperrors.ErrInvalidProvider,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].NationalID == nationalID {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("a patient with national id %d already exists", nationalID),
				apperrors.ErrDuplicateNationalID,
			)
		}
	}

	patient := entities.Patient{
		ID:           s.nextPatientID,
		FirstName:    firstName,
		LastName:     lastName,
		NationalID:   nationalID,
		Age:          age,
		RegisteredOn: entities.Today(),
		Provider:     provider,
	}
	s.patients = append(s.patients, patient)
	s.nextPatientID++

	log.Info().Int("patient_id", patient.ID).Str("provider", string(provider)).Msg("patient registered")

	event := entities.NewLedgerEvent(entities.EventPatientRegistered)
	event.PatientID = patient.ID
	s.publish(ctx, event)

	return &patient, nil
}

// BookAppointment books an appointment for an existing patient. The amount
// due is computed once, from the patient's provider and age at booking
// time, and frozen on the appointment.
func (s *LedgerService) BookAppointment(ctx context.Context, patientID int, specialty entities.Specialty) (*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findPatientLocked(patientID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("no patient with id %d", patientID),
			apperrors.ErrPatientNotFound,
		)
	}
	patient := s.patients[idx]

	amount, err := s.pricing.AmountDue(specialty, patient.Provider, patient.Age)
	if err != nil {
		return nil, err
	}

	appointment := entities.Appointment{
		PatientID: patientID,
		Specialty: specialty,
		AmountDue: amount,
		BookedOn:  entities.Today(),
		Status:    entities.AppointmentStatusActive,
	}
	s.appointments = append(s.appointments, appointment)

	log.Info().
		Int("patient_id", patientID).
		Str("specialty", string(specialty)).
		Float64("amount_due", amount).
		Msg("appointment booked")

	event := entities.NewLedgerEvent(entities.EventAppointmentBooked)
	event.PatientID = patientID
	event.Specialty = specialty
	event.Amount = amount
	s.publish(ctx, event)

	return &appointment, nil
}

// SortAppointments reorders the appointment sequence in place. Both sorts
// are stable: ties keep their relative roster order.
func (s *LedgerService) SortAppointments(ctx context.Context, criterion entities.SortCriterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch criterion {
	case entities.SortByProvider:
		providerOf := make(map[int]entities.InsuranceProvider, len(s.patients))
		for i := range s.patients {
			providerOf[s.patients[i].ID] = s.patients[i].Provider
		}
		// An appointment referencing an unregistered patient breaks the
		// roster invariant; refuse to sort rather than crash mid-compare.
		for i := range s.appointments {
			if _, ok := providerOf[s.appointments[i].PatientID]; !ok {
				return apperrors.NewInternalError(
					fmt.Sprintf("appointment references unknown patient %d", s.appointments[i].PatientID),
					apperrors.ErrPatientNotFound,
				)
			}
		}
		sort.SliceStable(s.appointments, func(i, j int) bool {
			return providerOf[s.appointments[i].PatientID] < providerOf[s.appointments[j].PatientID]
		})
	case entities.SortByAmountDescending:
		sort.SliceStable(s.appointments, func(i, j int) bool {
			return s.appointments[i].AmountDue > s.appointments[j].AmountDue
		})
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown sort criterion %q", criterion), nil)
	}

	return nil
}
