package database

import (
	"context"

	"github.com/langmarket/api/model"
)

// ListCountries returns the distinct countries that have at least one
// active school
func (s *GORMStore) ListCountries(ctx context.Context) ([]string, error) {
	countries := []string{}
	err := s.db.WithContext(ctx).Model(&model.School{}).
		Where("status = ?", model.SchoolStatusActive).
		Distinct("country").
		Order("country ASC").
		Pluck("country", &countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// ListCities returns the distinct cities within a country that have at
// least one active school
func (s *GORMStore) ListCities(ctx context.Context, country string) ([]string, error) {
	cities := []string{}
	err := s.db.WithContext(ctx).Model(&model.School{}).
		Where("LOWER(country) = LOWER(?) AND status = ?", country, model.SchoolStatusActive).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}
