package services

import (
	"fmt"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// PricingService computes the amount due for an appointment from the
// specialty's base price and the patient's insurance discount rule. It is
// pure: no state beyond the read-only configuration, no side effects.
type PricingService struct {
	catalog *entities.SpecialtyCatalog
	rules   entities.InsuranceRuleTable
}

// NewPricingService creates a new pricing service
func NewPricingService(catalog *entities.SpecialtyCatalog, rules entities.InsuranceRuleTable) *PricingService {
	return &PricingService{catalog: catalog, rules: rules}
}

// AmountDue returns basePrice * (1 - d) where d is the signed discount
// fraction for the provider and age. A specialty absent from the catalog is
// an error; a provider without a configured rule prices at the base price.
func (s *PricingService) AmountDue(specialty entities.Specialty, provider entities.InsuranceProvider, age int) (float64, error) {
	basePrice, ok := s.catalog.BasePrice(specialty)
	if !ok {
		return 0, apperrors.NewNotFoundError(
			fmt.Sprintf("specialty %q is not in the catalog", specialty),
			apperrors.ErrUnknownSpecialty,
		)
	}

	rule := s.rules[provider]
	return basePrice * (1 - rule.Fraction(age)), nil
}
