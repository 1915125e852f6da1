package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// UserRepository defines persistence access for users and their roles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertUser = `
        INSERT INTO users (username, first_name, last_name, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	if err := tx.QueryRow(ctx, insertUser,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	const insertRole = `INSERT INTO user_roles (username, role_name) VALUES ($1, $2)`
	for _, role := range user.Roles {
		if _, err := tx.Exec(ctx, insertRole, user.Username, role.Name); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT username, first_name, last_name, password_hash, created_at, updated_at
        FROM users WHERE username=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	const roleQuery = `
        SELECT r.role_name, r.role_description
        FROM roles r
        JOIN user_roles ur ON ur.role_name = r.role_name
        WHERE ur.username=$1
        ORDER BY r.role_name`

	rows, err := r.pool.Query(ctx, roleQuery, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.Name, &role.Description); err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT 1 FROM users WHERE username=$1`

	var one int
	err := r.pool.QueryRow(ctx, query, username).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
