package repositories

import (
	"context"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// CatalogRepository loads the clinic configuration: the specialty catalog
// and the insurance discount rule table. Configuration is read once at
// startup and treated as read-only afterwards.
type CatalogRepository interface {
	Load(ctx context.Context) (*entities.SpecialtyCatalog, entities.InsuranceRuleTable, error)
}
