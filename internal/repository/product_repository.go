package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// ProductRepository defines persistence access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, searchKey string, page, size int) ([]domain.Product, int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (product_name, product_description, actual_price, discounted_price)
        VALUES ($1, $2, $3, $4)
        RETURNING product_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.ActualPrice,
		product.DiscountedPrice,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET product_name=$1, product_description=$2, actual_price=$3, discounted_price=$4, updated_at=NOW()
        WHERE product_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.ActualPrice,
		product.DiscountedPrice,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE product_id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `
        SELECT product_id, product_name, product_description, actual_price, discounted_price, created_at, updated_at
        FROM products WHERE product_id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.ActualPrice,
		&product.DiscountedPrice,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT product_id, product_name, product_description, actual_price, discounted_price, created_at, updated_at
        FROM products ORDER BY product_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) Search(ctx context.Context, searchKey string, page, size int) ([]domain.Product, int64, error) {
	const countQuery = `
        SELECT COUNT(*) FROM products
        WHERE $1 = '' OR product_name ILIKE '%' || $1 || '%'`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, searchKey).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
        SELECT product_id, product_name, product_description, actual_price, discounted_price, created_at, updated_at
        FROM products
        WHERE $1 = '' OR product_name ILIKE '%' || $1 || '%'
        ORDER BY product_name ASC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, searchKey, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.ActualPrice,
			&product.DiscountedPrice,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
