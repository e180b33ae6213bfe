package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dwa/backend/internal/model"
)

const uniqueViolation = "23505"

// UserRepository stores accounts in the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a repository over pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts u and fills in its ID and timestamps.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		u.FullName, u.Email, u.Password,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("createUser: %w", err)
	}
	return nil
}

// UserByEmail returns the account registered under email.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.queryUser(ctx, `WHERE email = $1`, email)
}

// UserByID returns the account with the given id.
func (r *UserRepository) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.queryUser(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) queryUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password, created_at, updated_at FROM users `+where,
		arg,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("queryUser: %w", err)
	}
	return &u, nil
}
