package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

// fakeCache is an in-memory Cache used to observe cache-through behavior
// without Redis. When failAll is set every operation errors, simulating an
// unavailable cache.
type fakeCache struct {
	mu        sync.Mutex
	data      map[string][]byte
	ttls      map[string]time.Duration
	expiresAt map[string]time.Time
	clock     time.Time
	failAll   bool
	gets      int
	sets      int
	deletes   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:      make(map[string][]byte),
		ttls:      make(map[string]time.Duration),
		expiresAt: make(map[string]time.Time),
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// advance moves the fake clock forward so tests can cross TTL boundaries
// without sleeping.
func (f *fakeCache) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(d)
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failAll {
		return context.DeadlineExceeded
	}
	if deadline, ok := f.expiresAt[key]; ok && !f.clock.Before(deadline) {
		delete(f.data, key)
		delete(f.ttls, key)
		delete(f.expiresAt, key)
		return cache.ErrNotFound
	}
	raw, ok := f.data[key]
	if !ok {
		return cache.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.failAll {
		return context.DeadlineExceeded
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	f.ttls[key] = expiration
	if expiration > 0 {
		f.expiresAt[key] = f.clock.Add(expiration)
	}
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.failAll {
		return context.DeadlineExceeded
	}
	for _, key := range keys {
		delete(f.data, key)
		delete(f.ttls, key)
		delete(f.expiresAt, key)
	}
	return nil
}

func (f *fakeCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, context.DeadlineExceeded
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var matched []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func (f *fakeCache) ttl(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}

// seed stores a value under key, bypassing the counters
func (f *fakeCache) seed(key string, value interface{}) {
	raw, _ := json.Marshal(value)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
}

// fakeStore is an in-memory database.Storage. Records are kept in maps by id;
// counters track how often the read paths hit the store.
type fakeStore struct {
	mu      sync.Mutex
	schools map[uint]*model.School
	courses map[uint]*model.Course
	posts   map[uint]*model.BlogPost
	users   map[uint]*model.User
	nextID  uint

	listSchoolCalls  int
	getSchoolCalls   int
	listCourseCalls  int
	listPostCalls    int
	getPostCalls     int
	listCountryCalls int
	listCityCalls    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schools: make(map[uint]*model.School),
		courses: make(map[uint]*model.Course),
		posts:   make(map[uint]*model.BlogPost),
		users:   make(map[uint]*model.User),
		nextID:  1,
	}
}

func (f *fakeStore) addSchool(school model.School) *model.School {
	f.mu.Lock()
	defer f.mu.Unlock()
	if school.ID == 0 {
		school.ID = f.nextID
		f.nextID++
	}
	if school.Status == "" {
		school.Status = model.SchoolStatusActive
	}
	f.schools[school.ID] = &school
	return &school
}

func (f *fakeStore) addCourse(course model.Course) *model.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	if course.ID == 0 {
		course.ID = f.nextID
		f.nextID++
	}
	f.courses[course.ID] = &course
	return &course
}

func (f *fakeStore) addPost(post model.BlogPost) *model.BlogPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID == 0 {
		post.ID = f.nextID
		f.nextID++
	}
	f.posts[post.ID] = &post
	return &post
}

func (f *fakeStore) HealthCheck() error { return nil }
func (f *fakeStore) Close() error       { return nil }

func (f *fakeStore) ListSchools(ctx context.Context, filter database.SchoolFilter) ([]model.SchoolListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listSchoolCalls++
	items := []model.SchoolListItem{}
	for _, s := range f.schools {
		if filter.Country != "" && !strings.EqualFold(s.Country, filter.Country) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(s.City, filter.City) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		priceFrom := 0.0
		for _, c := range f.courses {
			if c.SchoolID != s.ID {
				continue
			}
			if priceFrom == 0 || c.Price < priceFrom {
				priceFrom = c.Price
			}
		}
		items = append(items, model.SchoolListItem{
			Name: s.Name, Slug: s.Slug, City: s.City, Country: s.Country,
			Rating: s.Rating, Logo: s.Logo, PriceFrom: priceFrom,
		})
	}
	return items, nil
}

func (f *fakeStore) GetSchoolBySlug(ctx context.Context, slug string) (*model.School, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getSchoolCalls++
	for _, s := range f.schools {
		if s.Slug == slug {
			copied := *s
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) GetSchoolByID(ctx context.Context, id uint) (*model.School, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schools[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) CreateSchool(ctx context.Context, school *model.School) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	school.ID = f.nextID
	f.nextID++
	copied := *school
	f.schools[school.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateSchool(ctx context.Context, school *model.School) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schools[school.ID]; !ok {
		return database.ErrNotFound
	}
	copied := *school
	f.schools[school.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteSchool(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schools[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.schools, id)
	for cid, c := range f.courses {
		if c.SchoolID == id {
			delete(f.courses, cid)
		}
	}
	return nil
}

func (f *fakeStore) SchoolSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schools {
		if s.Slug == slug && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) TopSchoolSlugs(ctx context.Context, n int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slugs := []string{}
	for _, s := range f.schools {
		if len(slugs) >= n {
			break
		}
		slugs = append(slugs, s.Slug)
	}
	return slugs, nil
}

func (f *fakeStore) AdminListSchools(ctx context.Context, page, limit int) ([]model.School, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	schools := []model.School{}
	for _, s := range f.schools {
		schools = append(schools, *s)
	}
	return schools, int64(len(schools)), nil
}

func (f *fakeStore) ListCourses(ctx context.Context, filter database.CourseFilter) ([]model.CourseListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCourseCalls++
	items := []model.CourseListItem{}
	for _, c := range f.courses {
		if filter.SchoolID != 0 && c.SchoolID != filter.SchoolID {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		items = append(items, model.CourseListItem{
			ID: c.ID, SchoolID: c.SchoolID, Name: c.Name, Type: c.Type,
			DurationWeeks: c.DurationWeeks, Price: c.Price, VisaIncluded: c.VisaIncluded,
		})
	}
	return items, nil
}

func (f *fakeStore) GetCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStore) CreateCourse(ctx context.Context, course *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course.ID = f.nextID
	f.nextID++
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateCourse(ctx context.Context, course *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[course.ID]; !ok {
		return database.ErrNotFound
	}
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteCourse(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeStore) AdminListCourses(ctx context.Context, page, limit int) ([]model.Course, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := []model.Course{}
	for _, c := range f.courses {
		courses = append(courses, *c)
	}
	return courses, int64(len(courses)), nil
}

func (f *fakeStore) ListCountries(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCountryCalls++
	seen := map[string]bool{}
	countries := []string{}
	for _, s := range f.schools {
		if s.Status != model.SchoolStatusActive || seen[s.Country] {
			continue
		}
		seen[s.Country] = true
		countries = append(countries, s.Country)
	}
	return countries, nil
}

func (f *fakeStore) ListCities(ctx context.Context, country string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCityCalls++
	seen := map[string]bool{}
	cities := []string{}
	for _, s := range f.schools {
		if !strings.EqualFold(s.Country, country) || s.Status != model.SchoolStatusActive || seen[s.City] {
			continue
		}
		seen[s.City] = true
		cities = append(cities, s.City)
	}
	return cities, nil
}

func (f *fakeStore) ListPublishedPosts(ctx context.Context) ([]model.BlogListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listPostCalls++
	items := []model.BlogListItem{}
	for _, p := range f.posts {
		if p.Status != model.PostStatusPublished {
			continue
		}
		items = append(items, model.BlogListItem{Title: p.Title, Slug: p.Slug, CreatedAt: p.CreatedAt})
	}
	return items, nil
}

func (f *fakeStore) GetPublishedPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getPostCalls++
	for _, p := range f.posts {
		if p.Slug == slug && p.Status == model.PostStatusPublished {
			copied := *p
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) GetPostByID(ctx context.Context, id uint) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, post *model.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.nextID
	f.nextID++
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakeStore) UpdatePost(ctx context.Context, post *model.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return database.ErrNotFound
	}
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) PostSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AdminListPosts(ctx context.Context, page, limit int) ([]model.BlogPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := []model.BlogPost{}
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return posts, int64(len(posts)), nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}
