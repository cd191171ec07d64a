package database

import (
	"context"
	"errors"

	"github.com/langmarket/api/model"
	"gorm.io/gorm"
)

// ListCourses returns the projected course list matching the filter.
// The (school_id, type) composite index backs this query.
func (s *GORMStore) ListCourses(ctx context.Context, filter CourseFilter) ([]model.CourseListItem, error) {
	query := s.db.WithContext(ctx).Model(&model.Course{}).
		Select("id, school_id, name, type, duration_weeks, price, visa_included")

	if filter.SchoolID != 0 {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	items := []model.CourseListItem{}
	if err := query.Order("price ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AdminListCourses returns full course records for the admin panel,
// newest first
func (s *GORMStore) AdminListCourses(ctx context.Context, page, limit int) ([]model.Course, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	courses := []model.Course{}
	err := s.db.WithContext(ctx).Preload("School").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// GetCourseByID returns a course by primary key
func (s *GORMStore) GetCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := s.db.WithContext(ctx).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// CreateCourse inserts a new course
func (s *GORMStore) CreateCourse(ctx context.Context, course *model.Course) error {
	return s.db.WithContext(ctx).Create(course).Error
}

// UpdateCourse persists changes to an existing course
func (s *GORMStore) UpdateCourse(ctx context.Context, course *model.Course) error {
	return s.db.WithContext(ctx).Save(course).Error
}

// DeleteCourse soft-deletes a course
func (s *GORMStore) DeleteCourse(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
