package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	"github.com/clinicdesk/clinic-ledger/internal/domain/providers"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
)

const (
	catalogCacheKey = "clinic:config"
	catalogCacheTTL = 1800 // 30 minutes; configuration changes rarely
)

// CachedCatalogAdapter wraps a CatalogRepository with a cache so repeated
// process starts (and the indexer-style tooling) skip the slow path.
type CachedCatalogAdapter struct {
	inner repositories.CatalogRepository
	cache providers.CacheProvider
}

// NewCachedCatalogAdapter creates a caching decorator over inner.
func NewCachedCatalogAdapter(inner repositories.CatalogRepository, cache providers.CacheProvider) repositories.CatalogRepository {
	return &CachedCatalogAdapter{inner: inner, cache: cache}
}

// Load serves the configuration from cache when present, falling back to
// the wrapped repository and repopulating the cache best effort.
func (a *CachedCatalogAdapter) Load(ctx context.Context) (*entities.SpecialtyCatalog, entities.InsuranceRuleTable, error) {
	if cached, err := a.cache.Get(ctx, catalogCacheKey); err == nil {
		var file clinicConfigFile
		if err := json.Unmarshal(cached, &file); err == nil && file.Specialties != nil {
			return file.Specialties, file.InsuranceProviders, nil
		}
		// A corrupt cache entry falls through to the source of truth.
		if err := a.cache.Delete(ctx, catalogCacheKey); err != nil {
			log.Warn().Err(err).Msg("failed to evict corrupt catalog cache entry")
		}
	}

	catalog, rules, err := a.inner.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	if data, err := json.Marshal(clinicConfigFile{Specialties: catalog, InsuranceProviders: rules}); err == nil {
		if err := a.cache.Set(ctx, catalogCacheKey, data, catalogCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache clinic config")
		}
	}

	return catalog, rules, nil
}
