package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// MonthMetric is one month's aggregate value (order count or sales total).
type MonthMetric struct {
	Month string
	Value float64
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string
	Count  int64
}

// ProductSales is an aggregated sales figure for one product.
type ProductSales struct {
	ProductID   int64
	ProductName string
	Total       float64
}

// OrderRepository defines persistence access for orders and the dashboard
// aggregates computed over them.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	ListByUser(ctx context.Context, username string) ([]domain.Order, error)
	SearchByUser(ctx context.Context, username, searchKey string, page, size int) ([]domain.Order, int64, error)
	Search(ctx context.Context, searchKey, status string, page, size int) ([]domain.Order, int64, error)

	CountByMonth(ctx context.Context, username string) ([]MonthMetric, error)
	CountByStatus(ctx context.Context, username string) ([]StatusCount, error)
	LastOrders(ctx context.Context, limit int) ([]domain.Order, error)
	SalesPerMonth(ctx context.Context) ([]MonthMetric, error)
	TopSellingSince(ctx context.Context, since time.Time, limit int) ([]ProductSales, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderSelect = `
    SELECT o.order_id, o.full_name, o.full_address, o.contact_number, o.alternate_contact_number,
           o.status, o.amount, o.product_id, p.product_name, o.username, o.order_date
    FROM orders o
    JOIN products p ON p.product_id = o.product_id`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (full_name, full_address, contact_number, alternate_contact_number,
                            status, amount, product_id, username)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING order_id, order_date`

	return r.pool.QueryRow(ctx, query,
		order.FullName,
		order.FullAddress,
		order.ContactNumber,
		order.AlternateContactNumber,
		order.Status,
		order.Amount,
		order.ProductID,
		order.Username,
	).Scan(&order.ID, &order.OrderDate)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := orderSelect + ` WHERE o.order_id=$1`

	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE order_id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, username string) ([]domain.Order, error) {
	query := orderSelect + ` WHERE o.username=$1 ORDER BY o.order_date DESC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) SearchByUser(ctx context.Context, username, searchKey string, page, size int) ([]domain.Order, int64, error) {
	const countQuery = `
        SELECT COUNT(*) FROM orders
        WHERE username=$1 AND ($2 = '' OR full_name ILIKE '%' || $2 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, username, searchKey).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := orderSelect + `
        WHERE o.username=$1 AND ($2 = '' OR o.full_name ILIKE '%' || $2 || '%')
        ORDER BY o.full_name ASC
        LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, username, searchKey, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Search covers the admin listing. status "all" disables status filtering.
func (r *orderRepository) Search(ctx context.Context, searchKey, status string, page, size int) ([]domain.Order, int64, error) {
	const countQuery = `
        SELECT COUNT(*) FROM orders
        WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%')
          AND ($2 = 'all' OR status = $2)`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, searchKey, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := orderSelect + `
        WHERE ($1 = '' OR o.full_name ILIKE '%' || $1 || '%')
          AND ($2 = 'all' OR o.status = $2)
        ORDER BY o.full_name ASC
        LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, searchKey, status, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByMonth groups orders by calendar month. username "" covers all users.
func (r *orderRepository) CountByMonth(ctx context.Context, username string) ([]MonthMetric, error) {
	const query = `
        SELECT to_char(order_date, 'YYYY-MM') AS month, COUNT(*)::float8
        FROM orders
        WHERE $1 = '' OR username = $1
        GROUP BY month ORDER BY month`

	return r.queryMonthMetrics(ctx, query, username)
}

func (r *orderRepository) queryMonthMetrics(ctx context.Context, query string, args ...any) ([]MonthMetric, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []MonthMetric
	for rows.Next() {
		var m MonthMetric
		if err := rows.Scan(&m.Month, &m.Value); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (r *orderRepository) CountByStatus(ctx context.Context, username string) ([]StatusCount, error) {
	const query = `
        SELECT status, COUNT(*)
        FROM orders
        WHERE ($1 = '' OR username = $1) AND status IN ('Placed', 'Delivered')
        GROUP BY status ORDER BY status`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *orderRepository) LastOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	query := orderSelect + ` ORDER BY o.order_date DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) SalesPerMonth(ctx context.Context) ([]MonthMetric, error) {
	const query = `
        SELECT to_char(order_date, 'YYYY-MM') AS month, SUM(amount)::float8
        FROM orders
        GROUP BY month ORDER BY month`

	return r.queryMonthMetrics(ctx, query)
}

func (r *orderRepository) TopSellingSince(ctx context.Context, since time.Time, limit int) ([]ProductSales, error) {
	const query = `
        SELECT o.product_id, p.product_name, SUM(o.amount)::float8 AS total
        FROM orders o
        JOIN products p ON p.product_id = o.product_id
        WHERE o.order_date >= $1
        GROUP BY o.product_id, p.product_name
        ORDER BY total DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []ProductSales
	for rows.Next() {
		var ps ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.Total); err != nil {
			return nil, err
		}
		sales = append(sales, ps)
	}
	return sales, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.FullName,
		&order.FullAddress,
		&order.ContactNumber,
		&order.AlternateContactNumber,
		&order.Status,
		&order.Amount,
		&order.ProductID,
		&order.ProductName,
		&order.Username,
		&order.OrderDate,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
