package entities

// Snapshot is the flat persisted state of the roster: every patient and
// every appointment, in roster order.
type Snapshot struct {
	Patients     []Patient     `json:"patients"`
	Appointments []Appointment `json:"appointments"`
}

// WaitingEntry pairs an active appointment with its owning patient for the
// waiting-list report.
type WaitingEntry struct {
	Patient     Patient     `json:"patient"`
	Appointment Appointment `json:"appointment"`
}

// SpecialtyCount is one row of the demand report.
type SpecialtyCount struct {
	Specialty Specialty `json:"specialty"`
	Count     int       `json:"count"`
}
