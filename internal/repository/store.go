package repository

import (
	"context"

	"dwa/backend/internal/model"
)

// JobStore is the persistence contract for postings, implemented by
// JobRepository and by the in-memory store.
type JobStore interface {
	UpsertJob(ctx context.Context, job *model.JobPosting) (inserted bool, err error)
	ListJobs(ctx context.Context) ([]model.JobPosting, error)
	CategoryGroups(ctx context.Context) ([]model.CategoryGroup, error)
	JobsByCategory(ctx context.Context, category string, limit int) ([]model.JobPosting, error)
	SearchJobs(ctx context.Context, query string, page, limit int) (jobs []model.JobPosting, total int, err error)
	MapJobs(ctx context.Context) ([]model.JobPosting, error)
	Ping(ctx context.Context) error
}

// UserStore is the persistence contract for accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

var (
	_ JobStore  = (*JobRepository)(nil)
	_ UserStore = (*UserRepository)(nil)
)
