package database

import (
	"context"
	"errors"

	"github.com/langmarket/api/model"
	"gorm.io/gorm"
)

// schoolListFields is the projection used by public list reads. Anything the
// school cards do not render (description, image list) stays out of the query.
// price_from is the cheapest live course, the figure the school cards show.
const schoolListFields = "schools.name, schools.slug, schools.city, schools.country, schools.rating, schools.logo, " +
	"COALESCE((SELECT MIN(courses.price) FROM courses WHERE courses.school_id = schools.id AND courses.deleted_at IS NULL), 0) AS price_from"

// ListSchools returns the projected school list matching the filter,
// ordered by rating. Country and city match case-insensitively so the
// query agrees with the case-folded cache key; the lower() expression
// index created in Init backs this lookup.
func (s *GORMStore) ListSchools(ctx context.Context, filter SchoolFilter) ([]model.SchoolListItem, error) {
	query := s.db.WithContext(ctx).Model(&model.School{}).Select(schoolListFields)

	if filter.Country != "" {
		query = query.Where("LOWER(country) = LOWER(?)", filter.Country)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	items := []model.SchoolListItem{}
	if err := query.Order("rating DESC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetSchoolBySlug returns the full school record including its courses
func (s *GORMStore) GetSchoolBySlug(ctx context.Context, slug string) (*model.School, error) {
	var school model.School
	err := s.db.WithContext(ctx).Preload("Courses").Where("slug = ?", slug).First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// GetSchoolByID returns the full school record by primary key
func (s *GORMStore) GetSchoolByID(ctx context.Context, id uint) (*model.School, error) {
	var school model.School
	err := s.db.WithContext(ctx).First(&school, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// CreateSchool inserts a new school
func (s *GORMStore) CreateSchool(ctx context.Context, school *model.School) error {
	return s.db.WithContext(ctx).Create(school).Error
}

// UpdateSchool persists changes to an existing school
func (s *GORMStore) UpdateSchool(ctx context.Context, school *model.School) error {
	return s.db.WithContext(ctx).Save(school).Error
}

// DeleteSchool soft-deletes a school and cascades to its courses
func (s *GORMStore) DeleteSchool(ctx context.Context, id uint) error {
	// Soft deletes bypass the FK cascade, so the school's courses are
	// swept in the same transaction to keep them out of public reads.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.School{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("school_id = ?", id).Delete(&model.Course{}).Error
	})
}

// SchoolSlugTaken reports whether another school already owns the slug
func (s *GORMStore) SchoolSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.School{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdminListSchools returns full school records for the admin panel,
// newest first, regardless of status
func (s *GORMStore) AdminListSchools(ctx context.Context, page, limit int) ([]model.School, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.School{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	schools := []model.School{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&schools).Error
	if err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

// TopSchoolSlugs returns the slugs of the n highest-rated active schools.
// The cache warmer uses this set to keep the pre-rendered detail pages' data
// dependency hot.
func (s *GORMStore) TopSchoolSlugs(ctx context.Context, n int) ([]string, error) {
	slugs := []string{}
	err := s.db.WithContext(ctx).Model(&model.School{}).
		Where("status = ?", model.SchoolStatusActive).
		Order("rating DESC").
		Limit(n).
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	return slugs, nil
}
