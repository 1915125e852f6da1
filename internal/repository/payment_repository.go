package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// PaymentRepository defines persistence access for gateway payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByProviderID(ctx context.Context, providerID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (payment_id, username, provider_id, amount, currency, status, approval_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.Username,
		payment.ProviderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.ApprovalURL,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByProviderID(ctx context.Context, providerID string) (*domain.Payment, error) {
	const query = `
        SELECT payment_id, username, provider_id, amount, currency, status, approval_url, created_at, updated_at
        FROM payments WHERE provider_id=$1`

	var payment domain.Payment
	if err := r.pool.QueryRow(ctx, query, providerID).Scan(
		&payment.ID,
		&payment.Username,
		&payment.ProviderID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.ApprovalURL,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	const query = `UPDATE payments SET status=$1, updated_at=NOW() WHERE payment_id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
