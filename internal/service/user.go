package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/auth"
	"github.com/jswan/mercantile/internal/domain"
)

// RegisterParams contains the fields a new customer supplies at signup.
type RegisterParams struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// UserService handles signup and credential checks.
type UserService struct {
	store Store
}

// NewUserService creates a new user service.
func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

// Register creates a customer account. Emails are unique; a taken email
// returns domain.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	var verr error
	if params.Email == "" {
		verr = domain.AddFieldError(verr, "email", "email is required")
	}
	if params.FirstName == "" {
		verr = domain.AddFieldError(verr, "first_name", "first name is required")
	}
	if verr != nil {
		return nil, verr
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.NewValidationError("user.register", "password", err.Error())
		}
		return nil, domain.Internal(err, "user.register", "failed to hash password")
	}

	role, err := s.store.GetRoleByName(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, domain.CreateUserParams{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		RoleID:       role.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendActivity(ctx, user.ID, domain.ActivityUserSignedUp, "user", user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the email and password pair. Unknown emails and
// wrong passwords both return domain.ErrInvalidCredentials so the response
// does not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "user.authenticate", "failed to verify password")
	}

	if err := s.store.AppendActivity(ctx, user.ID, domain.ActivityUserLoggedIn, "user", user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.store.GetUserByID(ctx, id)
}
