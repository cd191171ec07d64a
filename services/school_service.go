package services

import (
	"context"
	"errors"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

// ErrSlugTaken is returned when a create or update would collide with an
// existing slug. Handlers map it to a 409.
var ErrSlugTaken = errors.New("slug already in use")

// SchoolService handles cache-through reads and invalidating writes for
// schools
type SchoolService struct {
	store database.Storage
	cache Cache
}

// NewSchoolService creates a new school service
func NewSchoolService(store database.Storage, cache Cache) *SchoolService {
	return &SchoolService{
		store: store,
		cache: cache,
	}
}

// ListSchools returns the projected school list for the filter, serving from
// cache when possible
func (s *SchoolService) ListSchools(ctx context.Context, filter database.SchoolFilter) ([]model.SchoolListItem, error) {
	key := cache.SchoolListKey(filter.Country, filter.City, filter.Status)

	items := []model.SchoolListItem{}
	if cacheGet(ctx, s.cache, key, &items) {
		return items, nil
	}

	items, err := s.store.ListSchools(ctx, filter)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, items, cache.SchoolListTTL)
	return items, nil
}

// GetSchoolBySlug returns the full school record, serving from cache when
// possible. Not-found outcomes are never cached.
func (s *SchoolService) GetSchoolBySlug(ctx context.Context, slug string) (*model.School, error) {
	key := cache.SchoolDetailKey(slug)

	var school model.School
	if cacheGet(ctx, s.cache, key, &school) {
		return &school, nil
	}

	found, err := s.store.GetSchoolBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, found, cache.SchoolDetailTTL)
	return found, nil
}

// RefreshSchoolDetail re-queries the store and overwrites the cached detail
// entry. Used by the cache warmer; safe to call repeatedly and concurrently
// for the same slug since populating with the same value is idempotent.
func (s *SchoolService) RefreshSchoolDetail(ctx context.Context, slug string) error {
	found, err := s.store.GetSchoolBySlug(ctx, slug)
	if err != nil {
		return err
	}
	cacheSet(ctx, s.cache, cache.SchoolDetailKey(slug), found, cache.SchoolDetailTTL)
	return nil
}

// CreateSchool validates slug uniqueness, creates the school, then
// invalidates the listings it could appear in
func (s *SchoolService) CreateSchool(ctx context.Context, school *model.School) error {
	taken, err := s.store.SchoolSlugTaken(ctx, school.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	if err := s.store.CreateSchool(ctx, school); err != nil {
		return err
	}

	s.invalidate(ctx, school.Slug)
	return nil
}

// UpdateSchool persists changes to a school and invalidates the affected
// cache entries. oldSlug covers renames, where the stale detail entry lives
// under the previous slug.
func (s *SchoolService) UpdateSchool(ctx context.Context, school *model.School, oldSlug string) error {
	taken, err := s.store.SchoolSlugTaken(ctx, school.Slug, school.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	if err := s.store.UpdateSchool(ctx, school); err != nil {
		return err
	}

	slugs := []string{school.Slug}
	if oldSlug != "" && oldSlug != school.Slug {
		slugs = append(slugs, oldSlug)
	}
	s.invalidate(ctx, slugs...)
	return nil
}

// DeleteSchool removes a school and invalidates every entry derived from it,
// including course listings since the delete cascades to the school's courses
func (s *SchoolService) DeleteSchool(ctx context.Context, id uint) error {
	school, err := s.store.GetSchoolByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteSchool(ctx, id); err != nil {
		return err
	}

	keys := []string{
		cache.SchoolDetailKey(school.Slug),
		cache.CountryListKey(),
	}
	cacheInvalidate(ctx, s.cache, keys,
		cache.SchoolListPattern(), cache.CityListPattern(), cache.CourseListPattern())
	return nil
}

// invalidate runs after a confirmed store commit. It drops the detail entries
// for the given slugs plus every school list and location list, since a
// school write can change any of them.
func (s *SchoolService) invalidate(ctx context.Context, slugs ...string) {
	keys := []string{cache.CountryListKey()}
	for _, slug := range slugs {
		keys = append(keys, cache.SchoolDetailKey(slug))
	}
	cacheInvalidate(ctx, s.cache, keys, cache.SchoolListPattern(), cache.CityListPattern())
}
