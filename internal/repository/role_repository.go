package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// RoleRepository defines persistence access for roles.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `INSERT INTO roles (role_name, role_description) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, role.Name, role.Description)
	return err
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `SELECT role_name, role_description FROM roles WHERE role_name=$1`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, name).Scan(&role.Name, &role.Description); err != nil {
		return nil, err
	}
	return &role, nil
}
