package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-ledger/internal/adapters/storage"
	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

func TestFileCatalogAdapter_GeneratesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "configs.json")
	adapter := storage.NewFileCatalogAdapter(path)

	catalog, rules, err := adapter.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultCatalog().Specialties(), catalog.Specialties())
	assert.Equal(t, entities.DefaultRuleTable(), rules)

	// The defaults are persisted so the next run reads the same file.
	_, err = os.Stat(path)
	assert.NoError(t, err)

	again, _, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Specialties(), again.Specialties())
}

func TestFileCatalogAdapter_LoadsExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	config := `{
		"specialties": [
			{"name": "Traumatologia", "base_price": 5500},
			{"name": "Odontologia", "base_price": 4000}
		],
		"insurance_providers": {
			"Apres": {"base": 0.25, "extra": 0.03, "extra_min_age": 26, "extra_max_age": 59}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	catalog, rules, err := storage.NewFileCatalogAdapter(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []entities.Specialty{
		entities.SpecialtyTraumatologia,
		entities.SpecialtyOdontologia,
	}, catalog.Specialties())

	price, ok := catalog.BasePrice(entities.SpecialtyTraumatologia)
	require.True(t, ok)
	assert.Equal(t, 5500.0, price)

	assert.InDelta(t, 0.28, rules[entities.ProviderApres].Fraction(45), 1e-9)
}

func TestFileCatalogAdapter_Load_Errors(t *testing.T) {
	t.Run("corrupt config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "configs.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, _, err := storage.NewFileCatalogAdapter(path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("no specialties", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "configs.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"specialties": [], "insurance_providers": {}}`), 0o644))

		_, _, err := storage.NewFileCatalogAdapter(path).Load(context.Background())
		assert.Error(t, err)
	})
}
