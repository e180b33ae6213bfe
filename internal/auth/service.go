// Package auth implements account registration, login and bearer-token
// verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dwa/backend/internal/model"
	"dwa/backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service is the account business logic. It has no dependency on the HTTP
// layer.
type Service struct {
	users  repository.UserStore
	tokens *Tokens
}

// NewService returns a Service over users, issuing tokens with tokens.
func NewService(users repository.UserStore, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. A taken email returns
// repository.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = NormalizeEmail(email)
	switch {
	case fullName == "":
		return nil, &ValidationError{Field: "fullName", Message: "is required"}
	case email == "":
		return nil, &ValidationError{Field: "email", Message: "is required"}
	case !strings.Contains(email, "@"):
		return nil, &ValidationError{Field: "email", Message: "is not a valid address"}
	case password == "":
		return nil, &ValidationError{Field: "password", Message: "is required"}
	case len(password) > MaxPasswordBytes:
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{FullName: fullName, Email: email, Password: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed token. An unknown email
// and a wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.UserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !CheckPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID)
}

// ParseToken returns the user id carried by token.
func (s *Service) ParseToken(token string) (int64, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// User returns the account with id, or ErrUserNotFound.
func (s *Service) User(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// Authenticate resolves token to its account.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	id, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return s.User(ctx, id)
}
