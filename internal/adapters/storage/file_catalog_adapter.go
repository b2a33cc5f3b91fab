package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// clinicConfigFile is the on-disk shape of the configuration snapshot.
type clinicConfigFile struct {
	Specialties        *entities.SpecialtyCatalog  `json:"specialties"`
	InsuranceProviders entities.InsuranceRuleTable `json:"insurance_providers"`
}

// FileCatalogAdapter loads the specialty catalog and insurance rule table
// from one JSON config file, generating it with defaults on first run.
type FileCatalogAdapter struct {
	path string
}

// NewFileCatalogAdapter creates a file-backed catalog store.
func NewFileCatalogAdapter(path string) repositories.CatalogRepository {
	return &FileCatalogAdapter{path: path}
}

// Load reads the config file, creating it with the default catalog and rule
// table if it does not exist yet.
func (a *FileCatalogAdapter) Load(ctx context.Context) (*entities.SpecialtyCatalog, entities.InsuranceRuleTable, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return a.generateDefaults()
	}
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to read clinic config", err)
	}

	var file clinicConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, apperrors.NewInternalError("failed to parse clinic config", err)
	}
	if file.Specialties == nil || file.Specialties.Len() == 0 {
		return nil, nil, apperrors.NewInternalError("clinic config has no specialties", nil)
	}

	return file.Specialties, file.InsuranceProviders, nil
}

func (a *FileCatalogAdapter) generateDefaults() (*entities.SpecialtyCatalog, entities.InsuranceRuleTable, error) {
	catalog := entities.DefaultCatalog()
	rules := entities.DefaultRuleTable()

	data, err := json.MarshalIndent(clinicConfigFile{
		Specialties:        catalog,
		InsuranceProviders: rules,
	}, "", "  ")
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to encode default clinic config", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return nil, nil, apperrors.NewInternalError("failed to create config directory", err)
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return nil, nil, apperrors.NewInternalError("failed to write default clinic config", err)
	}

	log.Info().Str("path", a.path).Msg("generated default clinic config")
	return catalog, rules, nil
}
