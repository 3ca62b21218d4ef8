package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswan/mercantile/internal/auth"
	"github.com/jswan/mercantile/internal/domain"
)

func TestRegister(t *testing.T) {
	store := &mockStore{}

	store.GetRoleByNameFunc = func(ctx context.Context, name string) (*domain.Role, error) {
		assert.Equal(t, domain.RoleCustomer, name)
		return &domain.Role{ID: 1, Name: name}, nil
	}

	var createdParams domain.CreateUserParams
	store.CreateUserFunc = func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
		createdParams = params
		return &domain.User{
			ID:        uuid.New(),
			Email:     params.Email,
			FirstName: params.FirstName,
			RoleID:    params.RoleID,
			RoleName:  domain.RoleCustomer,
			Active:    true,
		}, nil
	}

	svc := NewUserService(store)
	user, err := svc.Register(context.Background(), RegisterParams{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, int32(1), createdParams.RoleID)
	assert.NotEqual(t, "correct horse", createdParams.PasswordHash, "password must be stored hashed")
	assert.NoError(t, auth.VerifyPassword("correct horse", createdParams.PasswordHash))
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewUserService(&mockStore{})

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:     "bob@example.com",
		Password:  "short",
		FirstName: "Bob",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err), "want validation error, got %v", err)
}

func TestRegisterEmailTaken(t *testing.T) {
	store := &mockStore{}
	store.CreateUserFunc = func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
		return nil, domain.ErrEmailTaken
	}

	svc := NewUserService(store)
	_, err := svc.Register(context.Background(), RegisterParams{
		Email:     "taken@example.com",
		Password:  "correct horse",
		FirstName: "Eve",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	account := &domain.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hash,
		RoleName:     domain.RoleCustomer,
		Active:       true,
	}

	store := &mockStore{}
	store.GetUserByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == account.Email {
			u := *account
			return &u, nil
		}
		return nil, domain.ErrUserNotFound
	}

	svc := NewUserService(store)

	user, err := svc.Authenticate(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, account.ID, user.ID)

	// Wrong password and unknown email look identical to the caller.
	_, err = svc.Authenticate(context.Background(), "ada@example.com", "wrong horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	store := &mockStore{}
	store.GetUserByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Email: email, PasswordHash: hash, Active: false}, nil
	}

	svc := NewUserService(store)
	_, err = svc.Authenticate(context.Background(), "gone@example.com", "correct horse")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}
