package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// maxImageSize caps uploaded product images at 5MB.
const maxImageSize = 5 * 1024 * 1024

// ErrImageTooLarge rejects uploads above maxImageSize.
var ErrImageTooLarge = errors.New("image exceeds maximum allowed size")

// ImageUpload carries one uploaded file before it is stored.
type ImageUpload struct {
	ShortName   string
	ContentType string
	Data        []byte
}

// ProductService manages the catalog and its images.
type ProductService struct {
	products repository.ProductRepository
	images   repository.ImageRepository
	carts    repository.CartRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, images repository.ImageRepository, carts repository.CartRepository) *ProductService {
	return &ProductService{products: products, images: images, carts: carts}
}

// Create stores a new product and its uploaded images.
func (s *ProductService) Create(ctx context.Context, product *domain.Product, uploads []ImageUpload) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	return s.storeImages(ctx, product, uploads)
}

// Update replaces product attributes, removes the named preview images and
// stores any newly uploaded ones.
func (s *ProductService) Update(ctx context.Context, product *domain.Product, uploads []ImageUpload, removeShortNames []string) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	if err := s.images.DeleteByShortNames(ctx, product.ID, removeShortNames); err != nil {
		return err
	}
	return s.storeImages(ctx, product, uploads)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// Get returns one product with its images attached.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Images = images
	return product, nil
}

// List returns the whole catalog ordered by name.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

// Search returns one page of products filtered by name.
func (s *ProductService) Search(ctx context.Context, searchKey string, page, size int) ([]domain.Product, int64, error) {
	return s.products.Search(ctx, searchKey, page, size)
}

// CheckoutDetails resolves the products being bought: the single named
// product, or the caller's whole cart.
func (s *ProductService) CheckoutDetails(ctx context.Context, singleProduct bool, productID int64, username string) ([]domain.Product, error) {
	if singleProduct {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		return []domain.Product{*product}, nil
	}

	items, err := s.carts.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.Product)
	}
	return products, nil
}

// AddImage stores one upload against an existing product.
func (s *ProductService) AddImage(ctx context.Context, productID int64, upload ImageUpload) (*domain.ProductImage, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.storeImages(ctx, product, []ImageUpload{upload}); err != nil {
		return nil, err
	}
	image := product.Images[len(product.Images)-1]
	return &image, nil
}

// ImageByID returns one stored image with its payload.
func (s *ProductService) ImageByID(ctx context.Context, id int64) (*domain.ProductImage, error) {
	return s.images.GetByID(ctx, id)
}

// ImageByName returns one stored image by its randomized stored name.
func (s *ProductService) ImageByName(ctx context.Context, name string) (*domain.ProductImage, error) {
	return s.images.GetByName(ctx, name)
}

// DeleteImage removes one stored image.
func (s *ProductService) DeleteImage(ctx context.Context, id int64) error {
	return s.images.Delete(ctx, id)
}

// ImageMeta lists all stored images without payloads.
func (s *ProductService) ImageMeta(ctx context.Context) ([]domain.ProductImage, error) {
	return s.images.ListMeta(ctx)
}

// storeImages persists uploads under randomized stored names.
func (s *ProductService) storeImages(ctx context.Context, product *domain.Product, uploads []ImageUpload) error {
	for _, upload := range uploads {
		if len(upload.Data) > maxImageSize {
			return fmt.Errorf("%w: %s", ErrImageTooLarge, upload.ShortName)
		}
		image := &domain.ProductImage{
			ProductID:   product.ID,
			Name:        uuid.NewString() + "_" + upload.ShortName,
			ShortName:   upload.ShortName,
			ContentType: upload.ContentType,
			Data:        upload.Data,
		}
		if err := s.images.Add(ctx, image); err != nil {
			return err
		}
		product.Images = append(product.Images, *image)
	}
	return nil
}
