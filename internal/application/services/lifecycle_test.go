package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

func TestLedgerService_TreatNext(t *testing.T) {
	ctx := context.Background()

	t.Run("treats the first two active by default", func(t *testing.T) {
		f := newSortFixture(t)

		treated := f.ledger.TreatNext(ctx, 0)
		require.Len(t, treated, 2)
		assert.Equal(t, entities.SpecialtyMedicoClinico, treated[0].Specialty)
		assert.Equal(t, entities.SpecialtyOdontologia, treated[1].Specialty)

		statuses := appointmentStatuses(f.ledger.Appointments())
		assert.Equal(t, []entities.AppointmentStatus{
			entities.AppointmentStatusTreated,
			entities.AppointmentStatusTreated,
			entities.AppointmentStatusActive,
			entities.AppointmentStatusActive,
		}, statuses)
	})

	t.Run("skips already treated appointments", func(t *testing.T) {
		f := newSortFixture(t)

		f.ledger.TreatNext(ctx, 2)
		treated := f.ledger.TreatNext(ctx, 2)
		require.Len(t, treated, 2)
		assert.Equal(t, entities.SpecialtyPsicologia, treated[0].Specialty)
		assert.Equal(t, entities.SpecialtyTraumatologia, treated[1].Specialty)
	})

	t.Run("fewer active than requested", func(t *testing.T) {
		f := newSortFixture(t)

		treated := f.ledger.TreatNext(ctx, 10)
		assert.Len(t, treated, 4)
		assert.Empty(t, f.ledger.TreatNext(ctx, 10))
	})

	t.Run("empty roster yields nothing", func(t *testing.T) {
		ledger := newTestLedger(nil)
		assert.Empty(t, ledger.TreatNext(ctx, 2))
	})
}

func TestLedgerService_CollectPayments(t *testing.T) {
	ctx := context.Background()
	f := newSortFixture(t)

	t.Run("nothing treated means nothing collected", func(t *testing.T) {
		assert.Zero(t, f.ledger.CollectPayments(ctx))
	})

	t.Run("collects only treated appointments", func(t *testing.T) {
		f.ledger.TreatNext(ctx, 2)
		collected := f.ledger.CollectPayments(ctx)

		// Swiss Medical 30y Medico Clinico: 2000. Apres 45y Odontologia: 2880.
		assert.InDelta(t, 4880.0, collected, 1e-9)
		assert.InDelta(t, 4880.0, f.ledger.TotalCollected(), 1e-9)
	})

	t.Run("paid appointments are not collected twice", func(t *testing.T) {
		assert.Zero(t, f.ledger.CollectPayments(ctx))
		assert.InDelta(t, 4880.0, f.ledger.TotalCollected(), 1e-9)
	})

	t.Run("subsequent collections accumulate the total", func(t *testing.T) {
		f.ledger.TreatNext(ctx, 2)
		collected := f.ledger.CollectPayments(ctx)

		// PAMI 70y Psicologia: 1600. Apres 45y Traumatologia: 2880.
		assert.InDelta(t, 4480.0, collected, 1e-9)
		assert.InDelta(t, 9360.0, f.ledger.TotalCollected(), 1e-9)
	})
}

func TestLedgerService_CloseTill(t *testing.T) {
	ctx := context.Background()

	t.Run("fails while appointments are pending", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		ledger := newTestLedger(snapshots)
		p := mustRegister(t, ledger, "Ana", "Gomez", 30111222, 34, entities.ProviderSwissMedical)
		mustBook(t, ledger, p.ID, entities.SpecialtyMedicoClinico)

		_, err := ledger.CloseTill(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPendingAppointments))
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
		snapshots.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		// Treated but unpaid still blocks the close.
		ledger.TreatNext(ctx, 1)
		_, err = ledger.CloseTill(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrPendingAppointments))
	})

	t.Run("persists the snapshot and returns the total", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)

		ledger := newTestLedger(snapshots)
		p := mustRegister(t, ledger, "Ana", "Gomez", 30111222, 34, entities.ProviderSwissMedical)
		mustBook(t, ledger, p.ID, entities.SpecialtyMedicoClinico)
		ledger.TreatNext(ctx, 1)
		ledger.CollectPayments(ctx)

		total, err := ledger.CloseTill(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 2000.0, total, 1e-9)

		snapshots.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(s *entities.Snapshot) bool {
			return len(s.Patients) == 1 && len(s.Appointments) == 1 &&
				s.Appointments[0].Status == entities.AppointmentStatusPaid
		}))
	})

	t.Run("empty roster closes at zero", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)

		ledger := newTestLedger(snapshots)
		total, err := ledger.CloseTill(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("save failure propagates", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		ledger := newTestLedger(snapshots)
		_, err := ledger.CloseTill(ctx)
		assert.EqualError(t, err, "disk full")
	})
}

func TestLedgerService_LoadSnapshot(t *testing.T) {
	snapshots := new(MockSnapshotRepository)
	snapshots.On("Load", mock.Anything).Return(&entities.Snapshot{
		Patients: []entities.Patient{
			{ID: 3, FirstName: "Ana", LastName: "Gomez", NationalID: 30111222, Age: 34, Provider: entities.ProviderSwissMedical},
			{ID: 7, FirstName: "Luis", LastName: "Perez", NationalID: 28333444, Age: 45, Provider: entities.ProviderApres},
		},
		Appointments: []entities.Appointment{
			{PatientID: 3, Specialty: entities.SpecialtyMedicoClinico, AmountDue: 2000, Status: entities.AppointmentStatusPaid},
		},
	}, nil)

	ledger := newTestLedger(snapshots)
	require.NoError(t, ledger.LoadSnapshot(context.Background()))

	assert.Len(t, ledger.Patients(), 2)
	assert.Len(t, ledger.Appointments(), 1)

	// The ID counter continues past the highest persisted ID.
	p := mustRegister(t, ledger, "Marta", "Suarez", 19555666, 72, entities.ProviderPAMI)
	assert.Equal(t, 8, p.ID)
}

func appointmentStatuses(appointments []entities.Appointment) []entities.AppointmentStatus {
	statuses := make([]entities.AppointmentStatus, len(appointments))
	for i, a := range appointments {
		statuses[i] = a.Status
	}
	return statuses
}
