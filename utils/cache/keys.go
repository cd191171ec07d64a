package cache

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// prefix namespaces every cache key so a shared Redis instance can host
// other tenants without collisions.
const prefix = "lm"

// TTLs are fixed per operation. Lists tolerate five minutes of staleness,
// details ten, and the location lists an hour.
const (
	SchoolListTTL   = 5 * time.Minute
	SchoolDetailTTL = 10 * time.Minute
	CourseListTTL   = 5 * time.Minute
	CountryListTTL  = time.Hour
	CityListTTL     = time.Hour
	BlogListTTL     = 5 * time.Minute
	BlogDetailTTL   = 5 * time.Minute
)

// normalize maps an empty filter segment to a fixed placeholder so the same
// filter set always yields the same key.
func normalize(segment string) string {
	segment = strings.ToLower(strings.TrimSpace(segment))
	if segment == "" {
		return "all"
	}
	return strings.ReplaceAll(segment, ":", "_")
}

// SchoolListKey builds the key for a filtered school listing
func SchoolListKey(country, city, status string) string {
	return fmt.Sprintf("%s:schools:list:%s:%s:%s", prefix, normalize(country), normalize(city), normalize(status))
}

// SchoolDetailKey builds the key for a school detail lookup
func SchoolDetailKey(slug string) string {
	return fmt.Sprintf("%s:schools:detail:%s", prefix, normalize(slug))
}

// SchoolListPattern matches every school list key
func SchoolListPattern() string {
	return prefix + ":schools:list:*"
}

// CourseListKey builds the key for a filtered course listing. The filter set
// is hashed so new filters never change the key shape.
func CourseListKey(schoolID uint, courseType string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "school=%d&type=%s", schoolID, normalize(courseType))
	return fmt.Sprintf("%s:courses:list:%x", prefix, h.Sum64())
}

// CourseListPattern matches every course list key
func CourseListPattern() string {
	return prefix + ":courses:list:*"
}

// CountryListKey builds the key for the country listing
func CountryListKey() string {
	return prefix + ":countries"
}

// CityListKey builds the key for the city listing of a country
func CityListKey(country string) string {
	return fmt.Sprintf("%s:cities:%s", prefix, normalize(country))
}

// CityListPattern matches every city list key
func CityListPattern() string {
	return prefix + ":cities:*"
}

// BlogListKey builds the key for the blog listing
func BlogListKey() string {
	return prefix + ":blog:list"
}

// BlogDetailKey builds the key for a blog post detail lookup
func BlogDetailKey(slug string) string {
	return fmt.Sprintf("%s:blog:detail:%s", prefix, normalize(slug))
}
