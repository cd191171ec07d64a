package database

import (
	"context"
	"errors"

	"github.com/langmarket/api/model"
)

// ErrNotFound is returned when a lookup by id or slug matches no record.
// Handlers map it to a 404, distinct from store failures.
var ErrNotFound = errors.New("record not found")

// SchoolFilter narrows the public school listing
type SchoolFilter struct {
	Country string
	City    string
	Status  string
}

// CourseFilter narrows the public course listing
type CourseFilter struct {
	SchoolID uint
	Type     string
}

// Storage is the store adapter consumed by services and handlers
type Storage interface {
	HealthCheck() error
	Close() error

	// Schools
	ListSchools(ctx context.Context, filter SchoolFilter) ([]model.SchoolListItem, error)
	GetSchoolBySlug(ctx context.Context, slug string) (*model.School, error)
	GetSchoolByID(ctx context.Context, id uint) (*model.School, error)
	CreateSchool(ctx context.Context, school *model.School) error
	UpdateSchool(ctx context.Context, school *model.School) error
	DeleteSchool(ctx context.Context, id uint) error
	SchoolSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	TopSchoolSlugs(ctx context.Context, n int) ([]string, error)
	AdminListSchools(ctx context.Context, page, limit int) ([]model.School, int64, error)

	// Courses
	ListCourses(ctx context.Context, filter CourseFilter) ([]model.CourseListItem, error)
	GetCourseByID(ctx context.Context, id uint) (*model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) error
	UpdateCourse(ctx context.Context, course *model.Course) error
	DeleteCourse(ctx context.Context, id uint) error
	AdminListCourses(ctx context.Context, page, limit int) ([]model.Course, int64, error)

	// Locations
	ListCountries(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, country string) ([]string, error)

	// Blog
	ListPublishedPosts(ctx context.Context) ([]model.BlogListItem, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	GetPostByID(ctx context.Context, id uint) (*model.BlogPost, error)
	CreatePost(ctx context.Context, post *model.BlogPost) error
	UpdatePost(ctx context.Context, post *model.BlogPost) error
	DeletePost(ctx context.Context, id uint) error
	PostSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	AdminListPosts(ctx context.Context, page, limit int) ([]model.BlogPost, int64, error)

	// Users
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}
