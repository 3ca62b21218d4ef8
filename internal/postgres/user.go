package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

const userColumns = `u.id, u.email, u.password_hash, u.first_name, u.last_name,
	u.role_id, r.name, u.active, u.created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.RoleID, &u.RoleName, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a new account.
func (s *Store) CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, role_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		params.Email, params.PasswordHash, params.FirstName, params.LastName, params.RoleID,
	).Scan(&id)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.Internal(err, "user.create", "failed to create user")
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByEmail retrieves a user with their role name.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.email = $1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get_by_email", "failed to get user")
	}
	return u, nil
}

// GetUserByID retrieves a user with their role name.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get_by_id", "failed to get user")
	}
	return u, nil
}

// GetRoleByName retrieves a role by its seeded name.
func (s *Store) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var r domain.Role
	err := s.db.QueryRow(ctx,
		`SELECT id, name FROM roles WHERE name = $1`, name,
	).Scan(&r.ID, &r.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("role.get_by_name", "role", name)
		}
		return nil, domain.Internal(err, "role.get_by_name", "failed to get role")
	}
	return &r, nil
}
