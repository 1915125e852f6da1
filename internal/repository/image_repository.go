package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// ImageRepository defines persistence access for product images.
type ImageRepository interface {
	Add(ctx context.Context, image *domain.ProductImage) error
	GetByID(ctx context.Context, id int64) (*domain.ProductImage, error)
	GetByName(ctx context.Context, name string) (*domain.ProductImage, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.ProductImage, error)
	ListMeta(ctx context.Context) ([]domain.ProductImage, error)
	Delete(ctx context.Context, id int64) error
	DeleteByShortNames(ctx context.Context, productID int64, shortNames []string) error
}

type imageRepository struct {
	pool *pgxpool.Pool
}

// NewImageRepository returns a Postgres-backed implementation.
func NewImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &imageRepository{pool: pool}
}

func (r *imageRepository) Add(ctx context.Context, image *domain.ProductImage) error {
	const query = `
        INSERT INTO product_images (product_id, image_name, short_name, content_type, data)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING image_id`

	return r.pool.QueryRow(ctx, query,
		image.ProductID,
		image.Name,
		image.ShortName,
		image.ContentType,
		image.Data,
	).Scan(&image.ID)
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*domain.ProductImage, error) {
	const query = `
        SELECT image_id, product_id, image_name, short_name, content_type, data
        FROM product_images WHERE image_id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *imageRepository) GetByName(ctx context.Context, name string) (*domain.ProductImage, error) {
	const query = `
        SELECT image_id, product_id, image_name, short_name, content_type, data
        FROM product_images WHERE image_name=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *imageRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.ProductImage, error) {
	const query = `
        SELECT image_id, product_id, image_name, short_name, content_type, data
        FROM product_images WHERE product_id=$1
        ORDER BY image_id`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		var image domain.ProductImage
		if err := rows.Scan(
			&image.ID,
			&image.ProductID,
			&image.Name,
			&image.ShortName,
			&image.ContentType,
			&image.Data,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// ListMeta returns image rows without the binary payload.
func (r *imageRepository) ListMeta(ctx context.Context) ([]domain.ProductImage, error) {
	const query = `
        SELECT image_id, product_id, image_name, short_name, content_type
        FROM product_images ORDER BY image_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		var image domain.ProductImage
		if err := rows.Scan(
			&image.ID,
			&image.ProductID,
			&image.Name,
			&image.ShortName,
			&image.ContentType,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM product_images WHERE image_id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepository) DeleteByShortNames(ctx context.Context, productID int64, shortNames []string) error {
	if len(shortNames) == 0 {
		return nil
	}

	const query = `DELETE FROM product_images WHERE product_id=$1 AND short_name = ANY($2)`

	_, err := r.pool.Exec(ctx, query, productID, shortNames)
	return err
}

func (r *imageRepository) scanOne(row pgx.Row) (*domain.ProductImage, error) {
	var image domain.ProductImage
	if err := row.Scan(
		&image.ID,
		&image.ProductID,
		&image.Name,
		&image.ShortName,
		&image.ContentType,
		&image.Data,
	); err != nil {
		return nil, err
	}
	return &image, nil
}
