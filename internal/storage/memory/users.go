package memory

import (
	"context"
	"sync"
	"time"

	"dwa/backend/internal/model"
	"dwa/backend/internal/repository"
)

// Ensure UserStore implements the interface.
var _ repository.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of repository.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[int64]model.User
	byEmail map[string]int64
	nextID  int64
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[int64]model.User),
		byEmail: make(map[string]int64),
	}
}

// CreateUser stores u and fills in its ID and timestamps.
func (s *UserStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.nextID++
	now := time.Now().UTC()
	u.ID = s.nextID
	u.CreatedAt = now
	u.UpdatedAt = now

	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

// UserByEmail returns the account registered under email.
func (s *UserStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

// UserByID returns the account with the given id.
func (s *UserStore) UserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
