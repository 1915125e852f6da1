package service

import (
	"context"
	"errors"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// Cart faults surfaced to handlers.
var (
	ErrAlreadyInCart = errors.New("product already in cart")
	ErrNotCartOwner  = errors.New("cart item does not belong to the caller")
)

// CartService manages per-user shopping carts.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Add puts a product in the user's cart. A product appears at most once.
func (s *CartService) Add(ctx context.Context, username string, productID int64) (*domain.CartItem, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.carts.ExistsForUser(ctx, username, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInCart
	}

	item := &domain.CartItem{Username: username, Product: *product}
	if err := s.carts.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns the user's cart ordered by product name.
func (s *CartService) List(ctx context.Context, username string) ([]domain.CartItem, error) {
	return s.carts.ListByUser(ctx, username)
}

// Search returns one page of the user's cart filtered by product name.
func (s *CartService) Search(ctx context.Context, username, searchKey string, page, size int) ([]domain.CartItem, int64, error) {
	return s.carts.SearchByUser(ctx, username, searchKey, page, size)
}

// Delete removes one cart item after checking ownership.
func (s *CartService) Delete(ctx context.Context, username string, cartID int64) error {
	item, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if item.Username != username {
		return ErrNotCartOwner
	}
	return s.carts.Delete(ctx, cartID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, username string) error {
	return s.carts.ClearUser(ctx, username)
}
