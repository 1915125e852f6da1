package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// CartRepository defines persistence access for shopping carts.
type CartRepository interface {
	Add(ctx context.Context, item *domain.CartItem) error
	GetByID(ctx context.Context, id int64) (*domain.CartItem, error)
	ListByUser(ctx context.Context, username string) ([]domain.CartItem, error)
	SearchByUser(ctx context.Context, username, searchKey string, page, size int) ([]domain.CartItem, int64, error)
	ExistsForUser(ctx context.Context, username string, productID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	ClearUser(ctx context.Context, username string) error
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a Postgres-backed implementation.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

const cartSelect = `
    SELECT c.cart_id, c.username, c.added_at,
           p.product_id, p.product_name, p.product_description, p.actual_price, p.discounted_price
    FROM cart_items c
    JOIN products p ON p.product_id = c.product_id`

func (r *cartRepository) Add(ctx context.Context, item *domain.CartItem) error {
	const query = `
        INSERT INTO cart_items (username, product_id)
        VALUES ($1, $2)
        RETURNING cart_id, added_at`

	return r.pool.QueryRow(ctx, query,
		item.Username,
		item.Product.ID,
	).Scan(&item.ID, &item.AddedAt)
}

func (r *cartRepository) GetByID(ctx context.Context, id int64) (*domain.CartItem, error) {
	query := cartSelect + ` WHERE c.cart_id=$1`

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, username string) ([]domain.CartItem, error) {
	query := cartSelect + ` WHERE c.username=$1 ORDER BY p.product_name ASC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCartItems(rows)
}

func (r *cartRepository) SearchByUser(ctx context.Context, username, searchKey string, page, size int) ([]domain.CartItem, int64, error) {
	const countQuery = `
        SELECT COUNT(*) FROM cart_items c
        JOIN products p ON p.product_id = c.product_id
        WHERE c.username=$1 AND ($2 = '' OR p.product_name ILIKE '%' || $2 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, username, searchKey).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := cartSelect + `
        WHERE c.username=$1 AND ($2 = '' OR p.product_name ILIKE '%' || $2 || '%')
        ORDER BY p.product_name ASC
        LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, username, searchKey, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanCartItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *cartRepository) ExistsForUser(ctx context.Context, username string, productID int64) (bool, error) {
	const query = `SELECT 1 FROM cart_items WHERE username=$1 AND product_id=$2`

	var one int
	err := r.pool.QueryRow(ctx, query, username, productID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM cart_items WHERE cart_id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cartRepository) ClearUser(ctx context.Context, username string) error {
	const query = `DELETE FROM cart_items WHERE username=$1`

	_, err := r.pool.Exec(ctx, query, username)
	return err
}

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := row.Scan(
		&item.ID,
		&item.Username,
		&item.AddedAt,
		&item.Product.ID,
		&item.Product.Name,
		&item.Product.Description,
		&item.Product.ActualPrice,
		&item.Product.DiscountedPrice,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanCartItems(rows pgx.Rows) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
