package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) RegisterPatient(ctx context.Context, firstName, lastName string, nationalID, age int, provider entities.InsuranceProvider) (*entities.Patient, error) {
	args := m.Called(ctx, firstName, lastName, nationalID, age, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Patients() []entities.Patient {
	args := m.Called()
	return args.Get(0).([]entities.Patient)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) BookAppointment(ctx context.Context, patientID int, specialty entities.Specialty) (*entities.Appointment, error) {
	args := m.Called(ctx, patientID, specialty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) SortAppointments(ctx context.Context, criterion entities.SortCriterion) error {
	args := m.Called(ctx, criterion)
	return args.Error(0)
}

func (m *MockAppointmentService) TreatNext(ctx context.Context, maxCount int) []entities.Appointment {
	args := m.Called(ctx, maxCount)
	return args.Get(0).([]entities.Appointment)
}

func (m *MockAppointmentService) Appointments() []entities.Appointment {
	args := m.Called()
	return args.Get(0).([]entities.Appointment)
}

type MockTillService struct {
	mock.Mock
}

func (m *MockTillService) CollectPayments(ctx context.Context) float64 {
	args := m.Called(ctx)
	return args.Get(0).(float64)
}

func (m *MockTillService) CloseTill(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTillService) TotalCollected() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WaitingList(ctx context.Context) []entities.WaitingEntry {
	args := m.Called(ctx)
	return args.Get(0).([]entities.WaitingEntry)
}

func (m *MockReportService) SpecialtyDemand(ctx context.Context) []entities.SpecialtyCount {
	args := m.Called(ctx)
	return args.Get(0).([]entities.SpecialtyCount)
}

func (m *MockReportService) LeastRequestedSpecialty(ctx context.Context) (entities.Specialty, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Specialty), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.LedgerEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.LedgerEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.LedgerEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}
