// Package memory provides in-memory implementations of the repository
// contracts, used by tests and for running without PostgreSQL.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"dwa/backend/internal/model"
	"dwa/backend/internal/repository"
)

// Ensure JobStore implements the interface.
var _ repository.JobStore = (*JobStore)(nil)

// JobStore is an in-memory implementation of repository.JobStore.
type JobStore struct {
	mu     sync.RWMutex
	byURL  map[string]*model.JobPosting
	nextID int64
	now    func() time.Time
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{
		byURL: make(map[string]*model.JobPosting),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// UpsertJob inserts job or replaces the stored posting with the same URL,
// keeping its ID and creation time.
func (s *JobStore) UpsertJob(_ context.Context, job *model.JobPosting) (bool, error) {
	if job.URL == "" {
		return false, repository.ErrMissingURL
	}
	if job.Category == "" {
		job.Category = "Other"
	}
	if job.Sector == "" {
		job.Sector = "Other"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.byURL[job.URL]
	if ok {
		job.ID = existing.ID
		job.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		job.ID = s.nextID
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	stored := *job
	s.byURL[job.URL] = &stored
	return !ok, nil
}

// ListJobs returns every posting, newest post_date first.
func (s *JobStore) ListJobs(_ context.Context) ([]model.JobPosting, error) {
	return s.filter(func(*model.JobPosting) bool { return true }), nil
}

// JobsByCategory returns up to limit postings of category, newest first.
func (s *JobStore) JobsByCategory(_ context.Context, category string, limit int) ([]model.JobPosting, error) {
	jobs := s.filter(func(j *model.JobPosting) bool { return j.Category == category })
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// MapJobs returns the postings that carry a primary or derived coordinate.
func (s *JobStore) MapJobs(_ context.Context) ([]model.JobPosting, error) {
	return s.filter(func(j *model.JobPosting) bool {
		_, ok := j.Coordinates()
		return ok
	}), nil
}

// SearchJobs matches query case-insensitively as a substring of the title,
// employer or excerpt.
func (s *JobStore) SearchJobs(_ context.Context, query string, page, limit int) ([]model.JobPosting, int, error) {
	q := strings.ToLower(query)
	matches := s.filter(func(j *model.JobPosting) bool {
		return strings.Contains(strings.ToLower(j.JobTitle), q) ||
			strings.Contains(strings.ToLower(j.Employer), q) ||
			strings.Contains(strings.ToLower(j.Excerpt), q)
	})

	total := len(matches)
	start := (page - 1) * limit
	if start < 0 || start >= total {
		return []model.JobPosting{}, total, nil
	}
	end := min(start+limit, total)
	return matches[start:end], total, nil
}

// CategoryGroups aggregates postings by (category, sector), largest first.
func (s *JobStore) CategoryGroups(_ context.Context) ([]model.CategoryGroup, error) {
	type key struct{ category, sector string }
	type acc struct {
		count int
		nocs  map[string]struct{}
		naics map[string]struct{}
	}

	s.mu.RLock()
	buckets := make(map[key]*acc)
	for _, j := range s.byURL {
		k := key{j.Category, j.Sector}
		a, ok := buckets[k]
		if !ok {
			a = &acc{nocs: map[string]struct{}{}, naics: map[string]struct{}{}}
			buckets[k] = a
		}
		a.count++
		if j.NOCCode != "" {
			a.nocs[j.NOCCode] = struct{}{}
		}
		if j.NAICSCode != "" {
			a.naics[j.NAICSCode] = struct{}{}
		}
	}
	s.mu.RUnlock()

	groups := make([]model.CategoryGroup, 0, len(buckets))
	for k, a := range buckets {
		groups = append(groups, model.CategoryGroup{
			Category:   k.category,
			Sector:     k.sector,
			Count:      a.count,
			NOCCodes:   sortedKeys(a.nocs),
			NAICSCodes: sortedKeys(a.naics),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Sector < b.Sector
	})
	return groups, nil
}

// Ping always succeeds.
func (s *JobStore) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored postings.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byURL)
}

// filter returns copies of the matching postings, newest post_date first,
// undated postings last, ties broken by descending ID.
func (s *JobStore) filter(keep func(*model.JobPosting) bool) []model.JobPosting {
	s.mu.RLock()
	out := make([]model.JobPosting, 0, len(s.byURL))
	for _, j := range s.byURL {
		if keep(j) {
			out = append(out, *j)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PostDate, out[j].PostDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
