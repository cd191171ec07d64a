package cron

import (
	"context"
	"log"
	"time"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/services"
	"github.com/robfig/cron/v3"
)

// CronManager manages all scheduled jobs
type CronManager struct {
	cron          *cron.Cron
	store         database.Storage
	schoolService *services.SchoolService
	topN          int
}

// NewCronManager creates a new cron manager
func NewCronManager(store database.Storage, schoolService *services.SchoolService, topN int) *CronManager {
	return &CronManager{
		cron:          cron.New(),
		store:         store,
		schoolService: schoolService,
		topN:          topN,
	}
}

// Start registers and starts all jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Every 10 minutes: keep the detail cache warm for the top schools.
	// The pre-rendered pages' only data dependency is the detail fetch,
	// so these keys should never expire cold.
	if _, err := m.cron.AddFunc("*/10 * * * *", m.WarmSchoolDetails); err != nil {
		return err
	}

	m.cron.Start()
	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// WarmSchoolDetails refreshes the cached detail entry for the highest-rated
// active schools
func (m *CronManager) WarmSchoolDetails() {
	if m.topN <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slugs, err := m.store.TopSchoolSlugs(ctx, m.topN)
	if err != nil {
		log.Printf("cache warm: failed to list top schools: %v", err)
		return
	}

	warmed := 0
	for _, slug := range slugs {
		if err := m.schoolService.RefreshSchoolDetail(ctx, slug); err != nil {
			log.Printf("cache warm: failed to refresh %s: %v", slug, err)
			continue
		}
		warmed++
	}

	log.Printf("cache warm: refreshed %d/%d school detail entries", warmed, len(slugs))
}
