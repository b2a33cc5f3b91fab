package entities

import (
	"encoding/json"
)

// Specialty identifies a medical specialty offered by the clinic.
type Specialty string

const (
	SpecialtyMedicoClinico Specialty = "Medico Clinico"
	SpecialtyOdontologia   Specialty = "Odontologia"
	SpecialtyPsicologia    Specialty = "Psicologia"
	SpecialtyTraumatologia Specialty = "Traumatologia"
)

// DefaultBasePrice is the base price assigned to every specialty when the
// configuration file is first generated.
const DefaultBasePrice = 4000

// CatalogEntry is one specialty with its base price.
type CatalogEntry struct {
	Name      Specialty `json:"name"`
	BasePrice float64   `json:"base_price"`
}

// SpecialtyCatalog maps specialties to base prices. Iteration order is the
// order entries were loaded in, which also decides report tie-breaks.
type SpecialtyCatalog struct {
	entries []CatalogEntry
}

// NewSpecialtyCatalog builds a catalog from ordered entries.
func NewSpecialtyCatalog(entries []CatalogEntry) *SpecialtyCatalog {
	return &SpecialtyCatalog{entries: append([]CatalogEntry(nil), entries...)}
}

// DefaultCatalog returns the catalog generated on first run.
func DefaultCatalog() *SpecialtyCatalog {
	return NewSpecialtyCatalog([]CatalogEntry{
		{Name: SpecialtyMedicoClinico, BasePrice: DefaultBasePrice},
		{Name: SpecialtyOdontologia, BasePrice: DefaultBasePrice},
		{Name: SpecialtyPsicologia, BasePrice: DefaultBasePrice},
		{Name: SpecialtyTraumatologia, BasePrice: DefaultBasePrice},
	})
}

// BasePrice looks up the base price for a specialty.
func (c *SpecialtyCatalog) BasePrice(s Specialty) (float64, bool) {
	for _, e := range c.entries {
		if e.Name == s {
			return e.BasePrice, true
		}
	}
	return 0, false
}

// Contains reports whether the specialty is in the catalog.
func (c *SpecialtyCatalog) Contains(s Specialty) bool {
	_, ok := c.BasePrice(s)
	return ok
}

// Specialties returns the specialties in catalog order.
func (c *SpecialtyCatalog) Specialties() []Specialty {
	names := make([]Specialty, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of catalog entries.
func (c *SpecialtyCatalog) Len() int {
	return len(c.entries)
}

// MarshalJSON preserves entry order as a JSON array.
func (c *SpecialtyCatalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.entries)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *SpecialtyCatalog) UnmarshalJSON(data []byte) error {
	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.entries = entries
	return nil
}

// DiscountRule holds the discount parameters for one insurance provider.
// Base is the unconditional signed fraction; Extra is added when the
// patient's age falls inside [ExtraMinAge, ExtraMaxAge]. An ExtraMaxAge of
// zero means no upper bound. Positive fractions reduce the price, negative
// ones surcharge it.
type DiscountRule struct {
	Base        float64 `json:"base"`
	Extra       float64 `json:"extra"`
	ExtraMinAge int     `json:"extra_min_age"`
	ExtraMaxAge int     `json:"extra_max_age"`
}

// Fraction evaluates the signed discount fraction for a patient age.
func (r DiscountRule) Fraction(age int) float64 {
	d := r.Base
	if age >= r.ExtraMinAge && (r.ExtraMaxAge == 0 || age <= r.ExtraMaxAge) {
		d += r.Extra
	}
	return d
}

// InsuranceRuleTable maps providers to their discount rules.
type InsuranceRuleTable map[InsuranceProvider]DiscountRule

// DefaultRuleTable returns the rule table generated on first run.
func DefaultRuleTable() InsuranceRuleTable {
	return InsuranceRuleTable{
		ProviderSwissMedical: {Base: 0.40, Extra: 0.10, ExtraMinAge: 18, ExtraMaxAge: 60},
		ProviderApres:        {Base: 0.25, Extra: 0.03, ExtraMinAge: 26, ExtraMaxAge: 59},
		ProviderPAMI:         {Base: 0.60, Extra: 0.03, ExtraMinAge: 80},
		ProviderParticular:   {Base: -0.05, Extra: -0.15, ExtraMinAge: 40, ExtraMaxAge: 60},
	}
}
