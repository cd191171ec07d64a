package services

import (
	"context"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

// CourseService handles cache-through reads and invalidating writes for
// courses
type CourseService struct {
	store database.Storage
	cache Cache
}

// NewCourseService creates a new course service
func NewCourseService(store database.Storage, cache Cache) *CourseService {
	return &CourseService{
		store: store,
		cache: cache,
	}
}

// ListCourses returns the projected course list for the filter, serving from
// cache when possible
func (s *CourseService) ListCourses(ctx context.Context, filter database.CourseFilter) ([]model.CourseListItem, error) {
	key := cache.CourseListKey(filter.SchoolID, filter.Type)

	items := []model.CourseListItem{}
	if cacheGet(ctx, s.cache, key, &items) {
		return items, nil
	}

	items, err := s.store.ListCourses(ctx, filter)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, items, cache.CourseListTTL)
	return items, nil
}

// CreateCourse verifies the owning school exists, creates the course, then
// invalidates the listings it could appear in. database.ErrNotFound from the
// school lookup propagates so handlers can reject dangling references.
func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	school, err := s.store.GetSchoolByID(ctx, course.SchoolID)
	if err != nil {
		return err
	}

	if err := s.store.CreateCourse(ctx, course); err != nil {
		return err
	}

	s.invalidate(ctx, school.Slug)
	return nil
}

// UpdateCourse persists changes to a course and invalidates the affected
// cache entries
func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	school, err := s.store.GetSchoolByID(ctx, course.SchoolID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateCourse(ctx, course); err != nil {
		return err
	}

	s.invalidate(ctx, school.Slug)
	return nil
}

// DeleteCourse removes a course and invalidates the affected cache entries
func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}

	school, err := s.store.GetSchoolByID(ctx, course.SchoolID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, school.Slug)
	return nil
}

// invalidate drops every course list entry plus the owning school's detail
// entry, which embeds the course list
func (s *CourseService) invalidate(ctx context.Context, schoolSlug string) {
	keys := []string{cache.SchoolDetailKey(schoolSlug)}
	cacheInvalidate(ctx, s.cache, keys, cache.CourseListPattern())
}
