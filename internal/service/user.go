package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/eliteshop/eliteshop/internal/auth"
	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/repository"
)

// UserService provides registration and credential checks for customer
// accounts.
type UserService interface {
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// RegisterParams carries new-account fields. Password is plaintext here and
// hashed before storage.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type userService struct {
	store repository.Store
}

// NewUserService creates a new UserService instance.
func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

// Register creates a new customer account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if params.Email == "" || params.Password == "" || params.FirstName == "" || params.LastName == "" {
		return nil, domain.Invalid("user.register", "Required fields missing")
	}

	_, err := s.store.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, "user.register", "failed to check existing user")
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("user.register", err.Error())
		}
		return nil, domain.Internal(err, "user.register", "failed to hash password")
	}

	id, err := s.store.InsertUser(ctx, repository.InsertUserParams{
		Email:     params.Email,
		Password:  hash,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
	})
	if err != nil {
		return nil, domain.Internal(err, "user.register", "failed to create user")
	}

	return &domain.User{
		ID:        id,
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
	}, nil
}

// Authenticate verifies email/password credentials. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot probe for
// registered addresses.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.Invalid("user.authenticate", "Email and password required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "user.authenticate", "failed to fetch user")
	}

	if err := auth.VerifyPassword(password, user.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "user.authenticate", "failed to verify password")
	}

	return &user, nil
}

// GetUser fetches a user by ID.
func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get", "failed to fetch user")
	}
	return &user, nil
}
