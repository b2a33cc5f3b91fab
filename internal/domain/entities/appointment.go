package entities

// AppointmentStatus is the lifecycle state of an appointment. Transitions
// only move forward: Active -> Treated -> Paid.
type AppointmentStatus string

const (
	AppointmentStatusActive  AppointmentStatus = "Active"
	AppointmentStatusTreated AppointmentStatus = "Treated"
	AppointmentStatusPaid    AppointmentStatus = "Paid"
)

// Valid reports whether the status is one of the closed set.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusActive, AppointmentStatusTreated, AppointmentStatusPaid:
		return true
	}
	return false
}

// CanAdvanceTo reports whether next is the single legal forward transition
// from s.
func (s AppointmentStatus) CanAdvanceTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusActive:
		return next == AppointmentStatusTreated
	case AppointmentStatusTreated:
		return next == AppointmentStatusPaid
	}
	return false
}

// Appointment is a booked slot for one specialty. The amount due is frozen
// at booking time and never recomputed.
type Appointment struct {
	PatientID int               `json:"patient_id" db:"patient_id"`
	Specialty Specialty         `json:"specialty" db:"specialty"`
	AmountDue float64           `json:"amount_due" db:"amount_due"`
	BookedOn  Date              `json:"booked_on" db:"booked_on"`
	Status    AppointmentStatus `json:"status" db:"status"`
}

// SortCriterion selects an appointment ordering.
type SortCriterion string

const (
	// SortByProvider orders by the owning patient's insurance provider name,
	// ascending, stable for ties.
	SortByProvider SortCriterion = "provider"

	// SortByAmountDescending orders by amount due, highest first, stable for
	// ties.
	SortByAmountDescending SortCriterion = "amount"
)

// Valid reports whether the criterion is known.
func (c SortCriterion) Valid() bool {
	return c == SortByProvider || c == SortByAmountDescending
}
