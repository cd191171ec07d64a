package services

import (
	"context"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/utils/cache"
)

// LocationService serves the country and city listings derived from active
// schools. These change rarely, so they carry the longest TTL.
type LocationService struct {
	store database.Storage
	cache Cache
}

// NewLocationService creates a new location service
func NewLocationService(store database.Storage, cache Cache) *LocationService {
	return &LocationService{
		store: store,
		cache: cache,
	}
}

// ListCountries returns the countries with at least one active school
func (s *LocationService) ListCountries(ctx context.Context) ([]string, error) {
	key := cache.CountryListKey()

	countries := []string{}
	if cacheGet(ctx, s.cache, key, &countries) {
		return countries, nil
	}

	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, countries, cache.CountryListTTL)
	return countries, nil
}

// ListCities returns the cities within a country that have at least one
// active school
func (s *LocationService) ListCities(ctx context.Context, country string) ([]string, error) {
	key := cache.CityListKey(country)

	cities := []string{}
	if cacheGet(ctx, s.cache, key, &cities) {
		return cities, nil
	}

	cities, err := s.store.ListCities(ctx, country)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, cities, cache.CityListTTL)
	return cities, nil
}
