package services

import (
	"context"
	"testing"

	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

func TestListCountriesCachesForAnHour(t *testing.T) {
	store := newFakeStore()
	store.addSchool(model.School{Name: "Emerald", Slug: "emerald", City: "Dublin", Country: "Ireland"})
	store.addSchool(model.School{Name: "Inactive", Slug: "inactive", City: "Cork", Country: "Portugal", Status: model.SchoolStatusInactive})

	fc := newFakeCache()
	svc := NewLocationService(store, fc)
	ctx := context.Background()

	countries, err := svc.ListCountries(ctx)
	if err != nil {
		t.Fatalf("ListCountries failed: %v", err)
	}
	if len(countries) != 1 || countries[0] != "Ireland" {
		t.Fatalf("expected only countries with active schools, got %v", countries)
	}
	if fc.ttl(cache.CountryListKey()) != cache.CountryListTTL {
		t.Fatalf("expected TTL %v, got %v", cache.CountryListTTL, fc.ttl(cache.CountryListKey()))
	}

	if _, err := svc.ListCountries(ctx); err != nil {
		t.Fatalf("second ListCountries failed: %v", err)
	}
	if store.listCountryCalls != 1 {
		t.Fatalf("expected cache hit to bypass the store, got %d store reads", store.listCountryCalls)
	}
}

func TestListCitiesKeyedPerCountry(t *testing.T) {
	store := newFakeStore()
	store.addSchool(model.School{Name: "Emerald", Slug: "emerald", City: "Dublin", Country: "Ireland"})
	store.addSchool(model.School{Name: "Pacific", Slug: "pacific", City: "Vancouver", Country: "Canada"})

	fc := newFakeCache()
	svc := NewLocationService(store, fc)
	ctx := context.Background()

	irish, err := svc.ListCities(ctx, "Ireland")
	if err != nil {
		t.Fatalf("ListCities failed: %v", err)
	}
	canadian, err := svc.ListCities(ctx, "Canada")
	if err != nil {
		t.Fatalf("ListCities failed: %v", err)
	}

	if len(irish) != 1 || irish[0] != "Dublin" {
		t.Fatalf("expected [Dublin], got %v", irish)
	}
	if len(canadian) != 1 || canadian[0] != "Vancouver" {
		t.Fatalf("expected [Vancouver], got %v", canadian)
	}
	if !fc.has(cache.CityListKey("Ireland")) || !fc.has(cache.CityListKey("Canada")) {
		t.Fatal("each country gets its own city list entry")
	}
	if store.listCityCalls != 2 {
		t.Fatalf("expected one store read per country, got %d", store.listCityCalls)
	}
}
