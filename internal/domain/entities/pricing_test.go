package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

func TestDiscountRule_Fraction(t *testing.T) {
	rules := entities.DefaultRuleTable()

	tests := []struct {
		name     string
		provider entities.InsuranceProvider
		age      int
		want     float64
	}{
		{"swiss medical inside window", entities.ProviderSwissMedical, 30, 0.50},
		{"swiss medical above window", entities.ProviderSwissMedical, 61, 0.40},
		{"apres below window", entities.ProviderApres, 25, 0.25},
		{"apres inside window", entities.ProviderApres, 45, 0.28},
		{"apres above window", entities.ProviderApres, 60, 0.25},
		{"pami below eighty", entities.ProviderPAMI, 65, 0.60},
		{"pami at eighty", entities.ProviderPAMI, 80, 0.63},
		{"pami unbounded window", entities.ProviderPAMI, 90, 0.63},
		{"particular outside window", entities.ProviderParticular, 30, -0.05},
		{"particular inside window", entities.ProviderParticular, 50, -0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, rules[tt.provider].Fraction(tt.age), 1e-9)
		})
	}
}

func TestSpecialtyCatalog_PreservesOrder(t *testing.T) {
	catalog := entities.DefaultCatalog()

	assert.Equal(t, []entities.Specialty{
		entities.SpecialtyMedicoClinico,
		entities.SpecialtyOdontologia,
		entities.SpecialtyPsicologia,
		entities.SpecialtyTraumatologia,
	}, catalog.Specialties())
}

func TestSpecialtyCatalog_JSONRoundTrip(t *testing.T) {
	catalog := entities.NewSpecialtyCatalog([]entities.CatalogEntry{
		{Name: entities.SpecialtyTraumatologia, BasePrice: 5500},
		{Name: entities.SpecialtyOdontologia, BasePrice: 4000},
	})

	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	var back entities.SpecialtyCatalog
	require.NoError(t, json.Unmarshal(data, &back))

	// Order survives the round trip, unlike a plain map.
	assert.Equal(t, []entities.Specialty{
		entities.SpecialtyTraumatologia,
		entities.SpecialtyOdontologia,
	}, back.Specialties())

	price, ok := back.BasePrice(entities.SpecialtyTraumatologia)
	require.True(t, ok)
	assert.Equal(t, 5500.0, price)
}

func TestSpecialtyCatalog_BasePrice_Unknown(t *testing.T) {
	catalog := entities.DefaultCatalog()

	_, ok := catalog.BasePrice("Dermatologia")
	assert.False(t, ok)
	assert.False(t, catalog.Contains("Dermatologia"))
}
