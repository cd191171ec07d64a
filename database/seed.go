package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/auth"
	"gorm.io/gorm"
)

// BootstrapAdmin ensures the admin account from the environment exists.
// Called at startup; a no-op when the account is already present or the
// credential is not configured.
func (s *GORMStore) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		log.Println("Admin bootstrap credential not configured, skipping")
		return nil
	}

	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := &model.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Bootstrap admin %s created", email)
	return nil
}

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedSchools(); err != nil {
		return fmt.Errorf("failed to seed schools: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// SeedSchools inserts a small set of sample schools if none exist
func (s *Seeder) SeedSchools() error {
	var count int64
	if err := s.db.Model(&model.School{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Schools already seeded, skipping")
		return nil
	}

	schools := []model.School{
		{
			Name:        "Emerald Language Institute",
			Slug:        "emerald-language-institute",
			City:        "Dublin",
			Country:     "Ireland",
			Description: "City-centre school focused on general and exam English.",
			FoundedYear: 1998,
			Rating:      4.7,
			Status:      model.SchoolStatusActive,
		},
		{
			Name:        "Pacific English College",
			Slug:        "pacific-english-college",
			City:        "Vancouver",
			Country:     "Canada",
			Description: "Mid-size college with strong business English programs.",
			FoundedYear: 2005,
			Rating:      4.5,
			Status:      model.SchoolStatusActive,
		},
		{
			Name:        "Harbour School of English",
			Slug:        "harbour-school-of-english",
			City:        "Sydney",
			Country:     "Australia",
			Description: "Beachside campus offering intensive courses year round.",
			FoundedYear: 2010,
			Rating:      4.2,
			Status:      model.SchoolStatusActive,
		},
	}

	for _, school := range schools {
		if err := s.db.Create(&school).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d schools", len(schools))
	return nil
}

// SeedCourses inserts sample courses for the seeded schools
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Courses already seeded, skipping")
		return nil
	}

	var schools []model.School
	if err := s.db.Order("id ASC").Find(&schools).Error; err != nil {
		return err
	}

	for _, school := range schools {
		courses := []model.Course{
			{
				SchoolID:      school.ID,
				Name:          "General English 20",
				Type:          model.CourseTypeGeneral,
				DurationWeeks: 12,
				Price:         2400,
			},
			{
				SchoolID:      school.ID,
				Name:          "Intensive English 30",
				Type:          model.CourseTypeIntensive,
				DurationWeeks: 8,
				Price:         2900,
				VisaIncluded:  true,
			},
		}
		for _, course := range courses {
			if err := s.db.Create(&course).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded courses for %d schools", len(schools))
	return nil
}

// RunSeeds is the entry point used by cmd/seed
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}
