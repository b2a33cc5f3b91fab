package entities

import (
	"unicode"
)

// InsuranceProvider identifies the payer whose rules price a patient's
// appointments.
type InsuranceProvider string

const (
	ProviderSwissMedical InsuranceProvider = "Swiss Medical"
	ProviderApres        InsuranceProvider = "Apres"
	ProviderPAMI         InsuranceProvider = "PAMI"
	ProviderParticular   InsuranceProvider = "Particular"
)

// pamiCutoverAge is the age at and above which PAMI is the only valid provider.
const pamiCutoverAge = 60

// Providers lists every known insurance provider.
func Providers() []InsuranceProvider {
	return []InsuranceProvider{ProviderSwissMedical, ProviderApres, ProviderPAMI, ProviderParticular}
}

// Valid reports whether the provider is one of the closed set.
func (p InsuranceProvider) Valid() bool {
	switch p {
	case ProviderSwissMedical, ProviderApres, ProviderPAMI, ProviderParticular:
		return true
	}
	return false
}

// ValidForAge reports whether the provider may be assigned to a patient of
// the given age: PAMI if and only if age >= 60.
func (p InsuranceProvider) ValidForAge(age int) bool {
	if !p.Valid() {
		return false
	}
	if age >= pamiCutoverAge {
		return p == ProviderPAMI
	}
	return p != ProviderPAMI
}

// Patient age bounds accepted at registration.
const (
	MinPatientAge = 18
	MaxPatientAge = 90
)

// MaxNameLength bounds first and last names.
const MaxNameLength = 30

// ValidName reports whether s is a non-empty alphabetic string of at most
// MaxNameLength characters.
func ValidName(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > MaxNameLength {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidAge reports whether age is within the accepted registration range.
func ValidAge(age int) bool {
	return age >= MinPatientAge && age <= MaxPatientAge
}

// Patient is a registered clinic patient. IDs are assigned sequentially by
// the ledger and never reused; all fields are immutable after registration.
type Patient struct {
	ID           int               `json:"id" db:"id"`
	FirstName    string            `json:"first_name" db:"first_name"`
	LastName     string            `json:"last_name" db:"last_name"`
	NationalID   int               `json:"national_id" db:"national_id"`
	Age          int               `json:"age" db:"age"`
	RegisteredOn Date              `json:"registered_on" db:"registered_on"`
	Provider     InsuranceProvider `json:"insurance_provider" db:"insurance_provider"`
}
