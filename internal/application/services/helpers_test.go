package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/application/services"
	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// MockSnapshotRepository is a testify mock of repositories.SnapshotRepository.
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context) (*entities.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func newTestLedger(snapshots *MockSnapshotRepository) *services.LedgerService {
	catalog := entities.DefaultCatalog()
	pricing := services.NewPricingService(catalog, entities.DefaultRuleTable())
	return services.NewLedgerService("UTN Medical Center", pricing, catalog, snapshots, nil)
}

func mustRegister(t *testing.T, ledger *services.LedgerService, first, last string, dni, age int, provider entities.InsuranceProvider) *entities.Patient {
	t.Helper()
	patient, err := ledger.RegisterPatient(context.Background(), first, last, dni, age, provider)
	require.NoError(t, err)
	return patient
}

func mustBook(t *testing.T, ledger *services.LedgerService, patientID int, specialty entities.Specialty) *entities.Appointment {
	t.Helper()
	appointment, err := ledger.BookAppointment(context.Background(), patientID, specialty)
	require.NoError(t, err)
	return appointment
}
